package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"HobbyHop/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 打开 MySQL 连接并设置连接池
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("mysql ping: %w", err)
	}
	return db, nil
}

// AutoMigrate 自动建表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Club{},
		&model.ClubMember{},
		&model.Post{},
		&model.Comment{},
		&model.PostLike{},
		&model.ClubOutbox{},
	)
}

// IsNotFound 判断是否为记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate 唯一索引冲突，需要打开 gorm 的 TranslateError
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Store 把绑定在同一个 *gorm.DB（或同一事务）上的仓储放在一起
type Store struct {
	db         *gorm.DB
	Users      *UserRepository
	Categories *CategoryRepository
	Clubs      *ClubRepository
	Members    *ClubMemberRepository
	Posts      *PostRepository
	Comments   *CommentRepository
	Likes      *PostLikeRepository
	Outbox     *OutboxRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		Users:      &UserRepository{DB: db},
		Categories: &CategoryRepository{DB: db},
		Clubs:      &ClubRepository{DB: db},
		Members:    &ClubMemberRepository{DB: db},
		Posts:      &PostRepository{DB: db},
		Comments:   &CommentRepository{DB: db},
		Likes:      &PostLikeRepository{DB: db},
		Outbox:     &OutboxRepository{DB: db},
	}
}

// Transaction fn 内只能使用 tx 上的仓储；fn 返回错误则整体回滚
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
