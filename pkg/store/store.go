// Package store keeps alpacactl settings in a bbolt database: named device
// profiles and the MQTT broker used by watch.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

const (
	settingsBucket = "alpaca"
	profilesBucket = "profiles"

	defaultMQTTHost  = "localhost"
	defaultMQTTPort  = 1883
	defaultTopicRoot = "alpaca"

	mqttConfigKey = "mqtt_config"
)

var ErrNotFound = errors.New("not found")

type MQTTConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	TopicRoot string
}

// Validate checks the broker address.
func (cfg MQTTConfig) Validate() error {
	if cfg.Host == "" {
		return fmt.Errorf("host cannot be empty")
	}
	if cfg.Port < 1000 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Port)
	}
	return nil
}

type Store struct {
	db *bolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	st, err := NewStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// NewStore wraps db and writes default values if they are not already set.
func NewStore(db *bolt.DB) (*Store, error) {
	st := Store{db: db}

	if err := st.setDefaults(); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) setDefaults() error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{settingsBucket, profilesBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if _, err := s.GetMQTTConfig(); err != nil {
		log.Infof("Setting default MQTT config")
		return s.SetMQTTConfig(MQTTConfig{
			Host:      defaultMQTTHost,
			Port:      defaultMQTTPort,
			TopicRoot: defaultTopicRoot,
		})
	}
	return nil
}

// SetMQTTConfig saves the MQTT configuration as a json string in the database.
func (s *Store) SetMQTTConfig(cfg MQTTConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.TopicRoot == "" {
		cfg.TopicRoot = defaultTopicRoot
	}

	return s.put(settingsBucket, mqttConfigKey, cfg)
}

// GetMQTTConfig retrieves the MQTT configuration from the database.
func (s *Store) GetMQTTConfig() (MQTTConfig, error) {
	var cfg MQTTConfig
	err := s.get(settingsBucket, mqttConfigKey, &cfg)
	return cfg, err
}

func (s *Store) put(bucket, key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), value)
	})
}

func (s *Store) get(bucket, key string, v any) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucket)
		}

		value := b.Get([]byte(key))
		if value == nil {
			return fmt.Errorf("key %s: %w", key, ErrNotFound)
		}

		return json.Unmarshal(value, v)
	})
}

// keys returns the keys of bucket in byte order.
func (s *Store) keys(bucket string) ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	sort.Strings(keys)
	return keys, err
}
