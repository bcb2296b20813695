package gtm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	tagmanager "google.golang.org/api/tagmanager/v2"
)

// newStubbedClient builds a client whose service talks to the given handler
// instead of the real API.
func newStubbedClient(t *testing.T, guard *AccountGuard, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := tagmanager.NewService(context.Background(),
		option.WithEndpoint(srv.URL),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return &Client{svc: svc, guard: guard}
}

func TestClientConcurrentVersionFetches(t *testing.T) {
	// The handler holds each version fetch until both are in flight, so the
	// test fails if the client serializes calls. The live-version fetch is
	// answered immediately and must complete alongside them.
	bothInFlight := make(chan struct{})
	var inFlight int32

	client := newStubbedClient(t, NewAccountGuard("6321366409"), func(w http.ResponseWriter, r *http.Request) {
		id := path.Base(r.URL.Path)
		if id == "versions:live" {
			id = "7"
		} else {
			if atomic.AddInt32(&inFlight, 1) == 2 {
				close(bothInFlight)
			}
			select {
			case <-bothInFlight:
			case <-time.After(5 * time.Second):
				http.Error(w, "second version fetch never arrived", http.StatusInternalServerError)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(&tagmanager.ContainerVersion{ContainerVersionId: id})
	})

	ctx := context.Background()
	containerPath := "accounts/6321366409/containers/222222"

	var wg sync.WaitGroup
	results := make(map[string]*tagmanager.ContainerVersion)
	errs := make(map[string]error)
	var mu sync.Mutex

	fetch := func(key string, call func() (*tagmanager.ContainerVersion, error)) {
		defer wg.Done()
		version, err := call()
		mu.Lock()
		results[key] = version
		errs[key] = err
		mu.Unlock()
	}

	wg.Add(3)
	go fetch("v3", func() (*tagmanager.ContainerVersion, error) {
		return client.GetVersion(ctx, containerPath+"/versions/3")
	})
	go fetch("v4", func() (*tagmanager.ContainerVersion, error) {
		return client.GetVersion(ctx, containerPath+"/versions/4")
	})
	go fetch("live", func() (*tagmanager.ContainerVersion, error) {
		return client.GetLiveVersion(ctx, containerPath)
	})
	wg.Wait()

	for key, err := range errs {
		require.NoError(t, err, key)
	}
	assert.Equal(t, "3", results["v3"].ContainerVersionId)
	assert.Equal(t, "4", results["v4"].ContainerVersionId)
	assert.Equal(t, "7", results["live"].ContainerVersionId)
}

func TestClientGuardRejectsBeforeNetwork(t *testing.T) {
	// The service is nil: if any operation reached it the test would panic,
	// so a clean PermissionError proves the guard runs first. The calls run
	// concurrently since the guard is shared read-only state.
	client := &Client{guard: NewAccountGuard("6321366409")}
	ctx := context.Background()

	calls := map[string]func() error{
		"list containers": func() error {
			_, err := client.ListContainers(ctx, "999999")
			return err
		},
		"list tags": func() error {
			_, err := client.ListTags(ctx, "accounts/999999/containers/1/workspaces/2")
			return err
		},
		"get version": func() error {
			_, err := client.GetVersion(ctx, "accounts/999999/containers/1/versions/2")
			return err
		},
		"publish version": func() error {
			_, err := client.PublishVersion(ctx, "accounts/999999/containers/1/versions/2", "fp")
			return err
		},
	}

	var wg sync.WaitGroup
	errs := make(map[string]error)
	var mu sync.Mutex
	for name, call := range calls {
		wg.Add(1)
		go func(name string, call func() error) {
			defer wg.Done()
			err := call()
			mu.Lock()
			errs[name] = err
			mu.Unlock()
		}(name, call)
	}
	wg.Wait()

	for name, err := range errs {
		require.Error(t, err, name)
		var perr *PermissionError
		require.True(t, errors.As(err, &perr), name)
		assert.Equal(t, "6321366409", perr.Configured, name)
	}
}
