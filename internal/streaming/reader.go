// Package streaming содержит буферизованный ридер для потокового чтения аудио
package streaming

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Reader читает аудиоресурс по HTTP порциями через буфер,
// не скачивая файл целиком
type Reader struct {
	reader     *bufio.Reader
	resp       *http.Response
	bufferSize int
}

// NewReader открывает потоковое чтение ресурса по URL
func NewReader(ctx context.Context, url string, bufferSize int) (*Reader, error) {
	// Клиент без общего таймаута: поток живет столько, сколько играет трек
	client := &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
			IdleConnTimeout:       300 * time.Second,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   2,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	// Заголовки для потокового чтения
	req.Header.Set("Accept-Encoding", "identity") // Сжатие мешает потоку
	req.Header.Set("Range", "bytes=0-")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("User-Agent", "go-hymnbox/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		resp.Body.Close()
		return nil, fmt.Errorf("ошибка HTTP: %s", resp.Status)
	}

	return &Reader{
		reader:     bufio.NewReaderSize(resp.Body, bufferSize),
		resp:       resp,
		bufferSize: bufferSize,
	}, nil
}

// Read реализует интерфейс io.Reader
func (sr *Reader) Read(p []byte) (n int, err error) {
	return sr.reader.Read(p)
}

// Close закрывает соединение
func (sr *Reader) Close() error {
	return sr.resp.Body.Close()
}

// ContentLength возвращает размер ресурса в байтах по заголовкам ответа
// (-1, если сервер его не сообщил). Используется для оценки длительности
// по битрейту, когда декодер не знает длину потока.
func (sr *Reader) ContentLength() int64 {
	return sr.resp.ContentLength
}
