// Package mongo keeps one document per user in the "users" collection, with
// each record collection stored as an array field on that document.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

const (
	usersCollection = "users"
	defaultUser     = "default"
	opTimeout       = 10 * time.Second
)

// Field names on the user document.
const (
	fieldSettings   = "settings"
	fieldTasks      = "tasks"
	fieldHabits     = "habits"
	fieldSleep      = "sleep"
	fieldExercise   = "exercise"
	fieldCategories = "categories"
	fieldUpdatedAt  = "updatedAt"
)

type userDoc struct {
	ID         string                  `bson:"_id"`
	Settings   *models.Settings        `bson:"settings,omitempty"`
	Tasks      []models.Task           `bson:"tasks,omitempty"`
	Habits     []models.Habit          `bson:"habits,omitempty"`
	Sleep      []models.SleepSession   `bson:"sleep,omitempty"`
	Exercise   []models.ExerciseRecord `bson:"exercise,omitempty"`
	Categories []string                `bson:"categories,omitempty"`
	UpdatedAt  time.Time               `bson:"updatedAt,omitempty"`
}

type Store struct {
	uri      string
	user     string
	database string

	client *mongo.Client
	users  *mongo.Collection
}

// New returns a store for a mongodb:// or mongodb+srv:// URI. The database
// comes from the URI path (default "routinely") and the user document id
// from a "user" query parameter (default "default").
func New(uri string) *Store {
	return &Store{uri: uri}
}

// ParseURI splits the routinely-specific parts out of uri and returns the
// cleaned URI for the driver.
func ParseURI(uri string) (clean, database, user string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to parse MongoDB URI: %w", err)
	}
	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return "", "", "", fmt.Errorf("unsupported MongoDB URI scheme %q", u.Scheme)
	}

	q := u.Query()
	user = q.Get("user")
	if user == "" {
		user = defaultUser
	}
	q.Del("user")
	u.RawQuery = q.Encode()

	database = strings.Trim(u.Path, "/")
	if database == "" {
		database = constants.AppName
	}
	return u.String(), database, user, nil
}

func (s *Store) connect() error {
	if s.client != nil {
		return nil
	}

	clean, database, user, err := ParseURI(s.uri)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(clean))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("failed to reach MongoDB: %w", err)
	}

	s.client = client
	s.database = database
	s.user = user
	s.users = client.Database(database).Collection(usersCollection)
	return nil
}

func (s *Store) Init() error {
	if err := s.connect(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	defaults := models.DefaultSettings()
	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": s.user},
		bson.M{"$setOnInsert": bson.M{fieldSettings: defaults, fieldUpdatedAt: time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to create user document: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if err := s.connect(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	n, err := s.users.CountDocuments(ctx, bson.M{"_id": s.user})
	if err != nil {
		return fmt.Errorf("failed to read user document: %w", err)
	}
	if n == 0 {
		return storage.ErrNotInitialized
	}
	return nil
}

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	err := s.client.Disconnect(ctx)
	s.client = nil
	s.users = nil
	return err
}

func (s *Store) GetConfigPath() string {
	return "mongodb"
}

// fetch loads only field from the user document.
func (s *Store) fetch(field string) (userDoc, error) {
	if s.users == nil {
		return userDoc{}, fmt.Errorf("storage not loaded")
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var doc userDoc
	opts := options.FindOne().SetProjection(bson.M{field: 1})
	err := s.users.FindOne(ctx, bson.M{"_id": s.user}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return userDoc{}, storage.ErrNotInitialized
	}
	if err != nil {
		return userDoc{}, fmt.Errorf("failed to read %s: %w", field, err)
	}
	return doc, nil
}

// put replaces field on the user document.
func (s *Store) put(field string, value interface{}) error {
	if s.users == nil {
		return fmt.Errorf("storage not loaded")
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": s.user},
		bson.M{"$set": bson.M{field: value, fieldUpdatedAt: time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", field, err)
	}
	return nil
}

func (s *Store) GetSettings() (models.Settings, error) {
	doc, err := s.fetch(fieldSettings)
	if err != nil {
		return models.Settings{}, err
	}
	if doc.Settings == nil {
		return models.DefaultSettings(), nil
	}
	settings := *doc.Settings
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	return s.put(fieldSettings, settings)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func (s *Store) LoadTasks() ([]models.Task, error) {
	doc, err := s.fetch(fieldTasks)
	if err != nil {
		return nil, err
	}
	return nonNil(doc.Tasks), nil
}

func (s *Store) SaveTasks(tasks []models.Task) error {
	return s.put(fieldTasks, nonNil(tasks))
}

func (s *Store) LoadHabits() ([]models.Habit, error) {
	doc, err := s.fetch(fieldHabits)
	if err != nil {
		return nil, err
	}
	return storage.NormalizeHabits(nonNil(doc.Habits)), nil
}

func (s *Store) SaveHabits(habits []models.Habit) error {
	return s.put(fieldHabits, nonNil(habits))
}

func (s *Store) LoadSleep() ([]models.SleepSession, error) {
	doc, err := s.fetch(fieldSleep)
	if err != nil {
		return nil, err
	}
	return nonNil(doc.Sleep), nil
}

func (s *Store) SaveSleep(sessions []models.SleepSession) error {
	return s.put(fieldSleep, nonNil(sessions))
}

func (s *Store) LoadExercise() ([]models.ExerciseRecord, error) {
	doc, err := s.fetch(fieldExercise)
	if err != nil {
		return nil, err
	}
	return nonNil(doc.Exercise), nil
}

func (s *Store) SaveExercise(records []models.ExerciseRecord) error {
	return s.put(fieldExercise, nonNil(records))
}

func (s *Store) LoadCategories() ([]string, error) {
	doc, err := s.fetch(fieldCategories)
	if err != nil {
		return nil, err
	}
	return nonNil(doc.Categories), nil
}

func (s *Store) SaveCategories(categories []string) error {
	return s.put(fieldCategories, nonNil(categories))
}
