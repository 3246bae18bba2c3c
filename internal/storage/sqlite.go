package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"encryption-service/internal/models"
)

type SQLite struct {
	db *gorm.DB
}

// NewSQLite opens dsn, migrates the schema and seeds the cipher methods.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// every new connection to :memory: opens an empty database
	sqlDB.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	if err := s.db.AutoMigrate(&models.User{}, &models.Method{}, &models.Session{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	methods := models.DefaultMethods()
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&methods).Error
	if err != nil {
		return fmt.Errorf("failed to seed methods: %w", err)
	}
	return nil
}

func (s *SQLite) AddUser(ctx context.Context, user models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("login = ?", user.Login).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyExists
		}
		return tx.Create(&user).Error
	})
}

func (s *SQLite) GetUser(ctx context.Context, login string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("login = ?", login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

func (s *SQLite) ListUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	err := s.db.WithContext(ctx).Order("rowid").Find(&users).Error
	return users, err
}

func (s *SQLite) GetMethod(ctx context.Context, id int) (models.Method, error) {
	var method models.Method
	err := s.db.WithContext(ctx).First(&method, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Method{}, ErrNotFound
	}
	return method, err
}

func (s *SQLite) ListMethods(ctx context.Context) ([]models.Method, error) {
	methods := make([]models.Method, 0, 2)
	err := s.db.WithContext(ctx).Order("id").Find(&methods).Error
	return methods, err
}

func (s *SQLite) AddSession(ctx context.Context, session models.Session) (models.Session, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Session{}).Count(&count).Error; err != nil {
			return err
		}
		session.Seq = 0
		session.ID = int(count) + 1
		return tx.Create(&session).Error
	})
	if err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (s *SQLite) GetSession(ctx context.Context, id int) (models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).Where("id = ?", id).Order("seq").First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Session{}, ErrNotFound
	}
	return session, err
}

func (s *SQLite) DeleteSession(ctx context.Context, seq int64) error {
	res := s.db.WithContext(ctx).Delete(&models.Session{}, "seq = ?", seq)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) ListSessions(ctx context.Context) ([]models.Session, error) {
	sessions := make([]models.Session, 0)
	err := s.db.WithContext(ctx).Order("seq").Find(&sessions).Error
	return sessions, err
}

func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
