// Package redis stores each collection as one JSON value under its
// routine-keeper-* key, optionally prefixed by a namespace.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

const opTimeout = 5 * time.Second

type Store struct {
	url       string
	namespace string
	client    *goredis.Client
}

// New returns a store for a redis:// or rediss:// URL. A "namespace" query
// parameter prefixes every key so several users can share one database.
func New(rawURL string) *Store {
	return &Store{url: rawURL}
}

// SplitNamespace removes the namespace parameter, which go-redis would reject.
func SplitNamespace(rawURL string) (string, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	q := u.Query()
	ns := q.Get("namespace")
	q.Del("namespace")
	u.RawQuery = q.Encode()
	return u.String(), ns, nil
}

// Key returns the stored key for a collection key.
func Key(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return namespace + ":" + key
}

func (s *Store) connect() error {
	if s.client != nil {
		return nil
	}

	clean, ns, err := SplitNamespace(s.url)
	if err != nil {
		return err
	}
	opts, err := goredis.ParseURL(clean)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := goredis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	s.client = client
	s.namespace = ns
	return nil
}

func (s *Store) Init() error {
	if err := s.connect(); err != nil {
		return err
	}
	raw, err := json.Marshal(models.DefaultSettings())
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.client.SetNX(ctx, Key(s.namespace, constants.StorageKeySettings), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save default settings: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if err := s.connect(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	n, err := s.client.Exists(ctx, Key(s.namespace, constants.StorageKeySettings)).Result()
	if err != nil {
		return fmt.Errorf("failed to read Redis: %w", err)
	}
	if n == 0 {
		return storage.ErrNotInitialized
	}
	return nil
}

func (s *Store) Close() error {
	if s.client != nil {
		err := s.client.Close()
		s.client = nil
		return err
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return "redis"
}

func (s *Store) get(key string) ([]byte, error) {
	if s.client == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	raw, err := s.client.Get(ctx, Key(s.namespace, key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return raw, nil
}

func (s *Store) set(key string, raw []byte) error {
	if s.client == nil {
		return fmt.Errorf("storage not loaded")
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.client.Set(ctx, Key(s.namespace, key), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) GetSettings() (models.Settings, error) {
	raw, err := s.get(constants.StorageKeySettings)
	if err != nil {
		return models.Settings{}, err
	}
	return storage.DecodeSettings(raw), nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.set(constants.StorageKeySettings, raw)
}

func load[T any](s *Store, key string) ([]T, error) {
	raw, err := s.get(key)
	if err != nil {
		return nil, err
	}
	return storage.DecodeCollection[T](key, raw), nil
}

func save[T any](s *Store, key string, items []T) error {
	raw, err := storage.EncodeCollection(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.set(key, raw)
}

func (s *Store) LoadTasks() ([]models.Task, error) {
	return load[models.Task](s, constants.StorageKeyTasks)
}

func (s *Store) SaveTasks(tasks []models.Task) error {
	return save(s, constants.StorageKeyTasks, tasks)
}

func (s *Store) LoadHabits() ([]models.Habit, error) {
	habits, err := load[models.Habit](s, constants.StorageKeyHabits)
	if err != nil {
		return nil, err
	}
	return storage.NormalizeHabits(habits), nil
}

func (s *Store) SaveHabits(habits []models.Habit) error {
	return save(s, constants.StorageKeyHabits, habits)
}

func (s *Store) LoadSleep() ([]models.SleepSession, error) {
	return load[models.SleepSession](s, constants.StorageKeySleep)
}

func (s *Store) SaveSleep(sessions []models.SleepSession) error {
	return save(s, constants.StorageKeySleep, sessions)
}

func (s *Store) LoadExercise() ([]models.ExerciseRecord, error) {
	return load[models.ExerciseRecord](s, constants.StorageKeyExercise)
}

func (s *Store) SaveExercise(records []models.ExerciseRecord) error {
	return save(s, constants.StorageKeyExercise, records)
}

func (s *Store) LoadCategories() ([]string, error) {
	return load[string](s, constants.StorageKeyCategories)
}

func (s *Store) SaveCategories(categories []string) error {
	return save(s, constants.StorageKeyCategories, categories)
}
