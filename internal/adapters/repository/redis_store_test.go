package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisStoreTestSuite struct {
	suite.Suite
	client *redis.Client
	mock   redismock.ClientMock
	store  *RedisStore
}

func (s *RedisStoreTestSuite) SetupTest() {
	s.client, s.mock = redismock.NewClientMock()
	s.store = NewRedisStore(s.client, WithKeyPrefix("spell:"))
}

func (s *RedisStoreTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisStoreTestSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreTestSuite))
}

func (s *RedisStoreTestSuite) TestSet() {
	ctx := context.Background()

	s.mock.ExpectSet("spell:7:Lux:Flash", "Lux:Flash", 300*time.Second).SetVal("OK")
	s.NoError(s.store.Set(ctx, "7:Lux:Flash", "Lux:Flash", 300*time.Second))

	s.mock.ExpectSet("spell:7:Lux:Flash", "Lux:Flash", 300*time.Second).SetErr(errors.New("redis error"))
	s.Error(s.store.Set(ctx, "7:Lux:Flash", "Lux:Flash", 300*time.Second))
}

func (s *RedisStoreTestSuite) TestExists() {
	ctx := context.Background()

	s.mock.ExpectExists("spell:7:Lux:Flash").SetVal(1)
	ok, err := s.store.Exists(ctx, "7:Lux:Flash")
	s.NoError(err)
	s.True(ok)

	s.mock.ExpectExists("spell:7:Lux:Flash").SetVal(0)
	ok, err = s.store.Exists(ctx, "7:Lux:Flash")
	s.NoError(err)
	s.False(ok)

	s.mock.ExpectExists("spell:7:Lux:Flash").SetErr(errors.New("redis error"))
	_, err = s.store.Exists(ctx, "7:Lux:Flash")
	s.Error(err)
}

func (s *RedisStoreTestSuite) TestRemaining() {
	ctx := context.Background()

	s.mock.ExpectPTTL("spell:7:Lux:Flash").SetVal(42 * time.Second)
	d, ok, err := s.store.Remaining(ctx, "7:Lux:Flash")
	s.NoError(err)
	s.True(ok)
	s.Equal(42*time.Second, d)

	s.mock.ExpectPTTL("spell:7:Lux:Flash").SetVal(-2)
	_, ok, err = s.store.Remaining(ctx, "7:Lux:Flash")
	s.NoError(err)
	s.False(ok)

	s.mock.ExpectPTTL("spell:7:Lux:Flash").SetErr(errors.New("redis error"))
	_, _, err = s.store.Remaining(ctx, "7:Lux:Flash")
	s.Error(err)
}

func (s *RedisStoreTestSuite) TestPing() {
	ctx := context.Background()

	s.mock.ExpectPing().SetVal("PONG")
	s.NoError(s.store.Ping(ctx))

	s.mock.ExpectPing().SetErr(errors.New("connection refused"))
	s.Error(s.store.Ping(ctx))
}
