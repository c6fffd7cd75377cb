// Package redisstore guarda las sesiones HTTP (carritos, flashes) en Redis. Implementa
// fiber.Storage para que el middleware de sesión lo use directamente.
package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	redis "github.com/redis/go-redis/v9"
)

var _ fiber.Storage = (*Storage)(nil)

const (
	defaultPrefix = "zeenat:session:"
	opTimeout     = 3 * time.Second
	scanBatch     = 100
)

// Storage es un fiber.Storage sobre un cliente go-redis. Cada clave lleva el prefijo.
type Storage struct {
	client *redis.Client
	prefix string
}

// New conecta a addr. La conexión se verifica con Ping, no aquí.
func New(addr, password string, db int) *Storage {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Storage{client: client, prefix: defaultPrefix}
}

// WithPrefix devuelve una copia que pone las claves bajo prefix.
func (s *Storage) WithPrefix(prefix string) *Storage {
	return &Storage{client: s.client, prefix: prefix}
}

// Ping verifica que Redis responda.
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Get devuelve (nil, nil) para una clave inexistente o vacía.
func (s *Storage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set guarda val; exp 0 la deja sin vencimiento.
func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.client.Set(ctx, s.prefix+key, val, exp).Err()
}

// Delete borra key. Una clave inexistente no es error.
func (s *Storage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.client.Del(ctx, s.prefix+key).Err()
}

// Reset borra todas las claves bajo el prefijo.
func (s *Storage) Reset() error {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, s.prefix+"*", scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return s.client.Del(ctx, batch...).Err()
	}
	return nil
}

// Close libera el cliente.
func (s *Storage) Close() error {
	return s.client.Close()
}
