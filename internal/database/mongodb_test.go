package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpen_InvalidURI(t *testing.T) {
	_, err := Open(context.Background(), "not-a-mongo-uri", "marketplace", time.Second)
	require.Error(t, err)
	require.Contains(t, err.Error(), "mongo connect")
}

func TestOpen_Unreachable(t *testing.T) {
	// nothing listens on port 1
	_, err := Open(context.Background(), "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200", "marketplace", 2*time.Second)
	require.Error(t, err)
}
