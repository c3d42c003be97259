package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// StoreConfig содержит настройки доступа к удаленному каталогу
type StoreConfig struct {
	// SourceURL - адрес каталога: https://... или s3://bucket/key
	SourceURL string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// Store загружает каталог треков из удаленного хранилища.
// Каталог хранится в памяти и при повторной загрузке заменяется целиком.
type Store struct {
	config *StoreConfig
	tracks []Track
}

// NewStore создает новый клиент каталога
func NewStore(config *StoreConfig) *Store {
	return &Store{
		config: config,
		tracks: make([]Track, 0),
	}
}

// Tracks возвращает текущий каталог в каталожном порядке
func (s *Store) Tracks() []Track {
	return s.tracks
}

// Replace заменяет каталог целиком (используется после загрузки и в тестах)
func (s *Store) Replace(tracks []Track) {
	s.tracks = tracks
}

// TrackByID возвращает трек по идентификатору
func (s *Store) TrackByID(id string) (*Track, error) {
	for i := range s.tracks {
		if s.tracks[i].ID == id {
			return &s.tracks[i], nil
		}
	}
	return nil, fmt.Errorf("трека с ID %q не найдено", id)
}

// Fetch загружает все записи каталога из источника и заменяет
// текущий каталог. Записи без обязательных полей отбрасываются
// с диагностикой, не прерывая загрузку.
func (s *Store) Fetch(ctx context.Context) error {
	raw, err := s.fetchRaw(ctx)
	if err != nil {
		return fmt.Errorf("ошибка загрузки каталога: %w", err)
	}

	var records []Track
	if err := json.Unmarshal(raw, &records); err != nil {
		return fmt.Errorf("ошибка разбора каталога: %w", err)
	}

	s.Replace(normalize(records))
	return nil
}

// normalize отбрасывает некорректные записи, заполняет значения
// по умолчанию и сортирует каталог по порядковому номеру
func normalize(records []Track) []Track {
	tracks := make([]Track, 0, len(records))
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			// Некорректная запись не фатальна для загрузки
			log.Printf("Запись каталога пропущена: %v", err)
			continue
		}
		tracks = append(tracks, rec.withDefaults())
	}

	// Каталожный порядок: по номеру, при равенстве - по ID,
	// чтобы повторные загрузки были детерминированными
	sort.Slice(tracks, func(i, j int) bool {
		if tracks[i].Index != tracks[j].Index {
			return tracks[i].Index < tracks[j].Index
		}
		return tracks[i].ID < tracks[j].ID
	})

	return tracks
}

// fetchRaw читает содержимое источника каталога
func (s *Store) fetchRaw(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(s.config.SourceURL, "s3://") {
		return s.fetchFromS3(ctx)
	}
	return s.fetchFromHTTP(ctx)
}

// fetchFromHTTP загружает каталог по обычному HTTP(S) URL
func (s *Store) fetchFromHTTP(ctx context.Context) ([]byte, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.SourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "go-hymnbox/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ошибка HTTP: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// fetchFromS3 загружает каталог из объекта S3 по адресу s3://bucket/key
func (s *Store) fetchFromS3(ctx context.Context) ([]byte, error) {
	bucket, key, err := splitS3URL(s.config.SourceURL)
	if err != nil {
		return nil, err
	}

	awsConfig := &aws.Config{
		Region: aws.String(s.config.Region),
		Credentials: credentials.NewStaticCredentials(
			s.config.AccessKey,
			s.config.SecretKey,
			"",
		),
	}

	// Если указан endpoint, добавляем его
	if s.config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(s.config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AWS сессии: %w", err)
	}

	downloader := s3manager.NewDownloader(sess)
	buf := aws.NewWriteAtBuffer([]byte{})

	_, err = downloader.DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки из S3: %w", err)
	}

	return buf.Bytes(), nil
}

// splitS3URL разбирает адрес вида s3://bucket/path/to/key
func splitS3URL(url string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(url, "s3://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("неверный адрес S3: %s", url)
	}
	return parts[0], parts[1], nil
}
