// Package testutil provides test utilities and mocks for the upload backends.
// This package is internal and should only be used for testing within this module.
package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/input-output-hk/catalyst-forge-libs/assetupload/internal/s3api"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/remote"
)

// MockS3Client is a mock implementation of the S3API interface for testing.
type MockS3Client struct {
	PutObjectFunc func(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// PutObject mocks the S3 PutObject operation.
func (m *MockS3Client) PutObject(
	ctx context.Context,
	params *s3.PutObjectInput,
	optFns ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	if m.PutObjectFunc != nil {
		return m.PutObjectFunc(ctx, params, optFns...)
	}
	return &s3.PutObjectOutput{}, nil
}

// Ensure MockS3Client implements S3API interface
var _ s3api.S3API = (*MockS3Client)(nil)

// Put is a single recorded call to MockObjectClient.Put.
type Put struct {
	Key  string
	Data []byte
}

// MockObjectClient is a remote.ObjectClient that records every call.
// PutFunc, when set, decides the outcome; otherwise every put succeeds.
// It is safe for concurrent use.
type MockObjectClient struct {
	PutFunc func(ctx context.Context, key string, data []byte) (*remote.PutResult, error)

	mu          sync.Mutex
	puts        []Put
	inFlight    int
	maxInFlight int
}

// Put records the call and delegates to PutFunc.
func (m *MockObjectClient) Put(ctx context.Context, key string, data []byte) (*remote.PutResult, error) {
	m.mu.Lock()
	m.puts = append(m.puts, Put{Key: key, Data: append([]byte(nil), data...)})
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, data)
	}
	return &remote.PutResult{Key: key, Size: int64(len(data)), ETag: "\"mock\""}, nil
}

// Puts returns the recorded calls ordered by key.
func (m *MockObjectClient) Puts() []Put {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := append([]Put(nil), m.puts...)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Keys returns the recorded keys in sorted order.
func (m *MockObjectClient) Keys() []string {
	puts := m.Puts()
	keys := make([]string, len(puts))
	for i, p := range puts {
		keys[i] = p.Key
	}
	return keys
}

// Calls returns how many times Put was called.
func (m *MockObjectClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.puts)
}

// MaxInFlight returns the highest number of concurrent Put calls observed.
func (m *MockObjectClient) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}

// Ensure MockObjectClient implements ObjectClient interface
var _ remote.ObjectClient = (*MockObjectClient)(nil)
