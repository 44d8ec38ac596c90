package api

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// 一次性下载的有效期
const exportDownloadTTL = 10 * time.Minute

type exportDownload struct {
	filename  string
	data      []byte
	expiresAt time.Time
}

// exportDownloadStore 生成好的报表，下载一次即删除
type exportDownloadStore struct {
	mu    sync.Mutex
	items map[string]exportDownload
}

func newExportDownloadStore() *exportDownloadStore {
	return &exportDownloadStore{
		items: make(map[string]exportDownload),
	}
}

func (s *exportDownloadStore) put(filename string, data []byte, now time.Time, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(now)

	token = uuid.NewString()
	s.items[token] = exportDownload{
		filename:  filename,
		data:      data,
		expiresAt: now.Add(ttl),
	}
	return token
}

// take 取出并删除
func (s *exportDownloadStore) take(token string, now time.Time) (exportDownload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(now)

	v, ok := s.items[token]
	if !ok {
		return exportDownload{}, false
	}
	delete(s.items, token)
	return v, true
}

func (s *exportDownloadStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *exportDownloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}
