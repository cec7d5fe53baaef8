package sqlstore

// 基于MySQL的键值存储，多个工作进程间共享缓存时使用，
// 过期通过expire_at列在读取时判定，不依赖数据库端的定时清理

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

type SQLStore struct {
	options
	db *sql.DB
}

// 创建并初始化MySQL键值存储，建立连接池并确保键值表存在
func New(opts ...Option) (*SQLStore, error) {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.sqlURL == "" {
		return nil, errors.New("empty sql url")
	}
	db, err := sql.Open("mysql", options.sqlURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(128)
	db.SetMaxIdleConns(16)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	s := &SQLStore{options: options, db: db}
	if err = s.createTable(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) createTable() error {
	query := `CREATE TABLE IF NOT EXISTS ` + s.table + ` (
		k VARCHAR(255) NOT NULL PRIMARY KEY,
		v TEXT,
		expire_at BIGINT NOT NULL DEFAULT 0
	) DEFAULT CHARSET=utf8mb4;`
	s.logger.Debug("create table", zap.String("sql", query))
	_, err := s.db.Exec(query)
	return err
}

// 读取键值，键不存在或expire_at已过期都视为未命中
func (s *SQLStore) Get(key string) (string, bool) {
	var value string
	var expireAt int64
	query := `SELECT v, expire_at FROM ` + s.table + ` WHERE k = ?`
	err := s.db.QueryRow(query, key).Scan(&value, &expireAt)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("kv get failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	if expireAt > 0 && expireAt < time.Now().Unix() {
		return "", false
	}
	return value, true
}

// 写入键值，已存在的键覆盖，ttl为0写入expire_at=0表示永不过期
func (s *SQLStore) Set(key string, value string, ttl time.Duration) error {
	var expireAt int64
	if ttl > 0 {
		expireAt = time.Now().Add(ttl).Unix()
	}
	query := `INSERT INTO ` + s.table + ` (k, v, expire_at) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE v = VALUES(v), expire_at = VALUES(expire_at)`
	s.logger.Debug("kv set", zap.String("key", key))
	_, err := s.db.Exec(query, key, value, expireAt)
	return err
}

// 删除过期键，由调用方按需周期触发
func (s *SQLStore) Purge() error {
	query := `DELETE FROM ` + s.table + ` WHERE expire_at > 0 AND expire_at < ?`
	_, err := s.db.Exec(query, time.Now().Unix())
	return err
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
