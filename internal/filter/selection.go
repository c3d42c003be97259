// Package filter содержит движок фильтрации каталога по категориям и поисковому запросу
package filter

import "sort"

// All - специальное значение выбора, означающее "без фильтрации по категории"
const All = "Все"

// Selection хранит выбранные значения одной категории фильтра.
// Инварианты: набор никогда не пуст; значение All не сочетается
// с конкретными значениями.
type Selection struct {
	values map[string]struct{}
}

// NewSelection создает выбор категории в исходном состоянии {All}
func NewSelection() *Selection {
	return &Selection{
		values: map[string]struct{}{All: {}},
	}
}

// Toggle переключает значение в выборе:
//   - выбор конкретного значения убирает All;
//   - выбор All сбрасывает все конкретные значения;
//   - снятие последнего конкретного значения возвращает {All}.
func (s *Selection) Toggle(value string) {
	if value == All {
		s.Reset()
		return
	}

	if _, ok := s.values[value]; ok {
		delete(s.values, value)
		// Пустой выбор недопустим
		if len(s.values) == 0 {
			s.Reset()
		}
		return
	}

	delete(s.values, All)
	s.values[value] = struct{}{}
}

// Reset возвращает выбор в исходное состояние {All}
func (s *Selection) Reset() {
	s.values = map[string]struct{}{All: {}}
}

// Contains сообщает, выбрано ли значение
func (s *Selection) Contains(value string) bool {
	_, ok := s.values[value]
	return ok
}

// IsAll сообщает, что категория не фильтрует (выбран только All)
func (s *Selection) IsAll() bool {
	return s.Contains(All)
}

// Matches проверяет, проходит ли значение трека фильтр категории
func (s *Selection) Matches(value string) bool {
	return s.IsAll() || s.Contains(value)
}

// Values возвращает выбранные значения в отсортированном виде
func (s *Selection) Values() []string {
	values := make([]string, 0, len(s.values))
	for v := range s.values {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Len возвращает количество выбранных значений
func (s *Selection) Len() int {
	return len(s.values)
}
