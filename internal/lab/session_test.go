package lab

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"relevance-workbench/internal/alerts"
	"relevance-workbench/internal/backend"
	"relevance-workbench/internal/runner"
	"relevance-workbench/internal/storage"
	storage_mocks "relevance-workbench/internal/storage/mocks"
)

func summaries(lo, hi int) []storage.SearchConfigurationSummary {
	out := []storage.SearchConfigurationSummary{}
	for i := lo; i <= hi; i++ {
		out = append(out, storage.SearchConfigurationSummary{ID: string(rune('a' + i)), Index: i})
	}
	return out
}

func openSession(t *testing.T) (*Registry, *Session) {
	t.Helper()
	ctrl := gomock.NewController(t)
	loader := storage_mocks.NewMockSearchConfigurationStore(ctrl)

	active := &storage.SearchConfiguration{ID: "e", ProjectID: "p1", Index: 4, IsActive: true}
	loader.EXPECT().Count(gomock.Any(), "p1").Return(5, nil)
	loader.EXPECT().Active(gomock.Any(), "p1").Return(active, nil).Times(2)
	loader.EXPECT().ListAround(gomock.Any(), "p1", 4, 3).Return(summaries(2, 4), nil)

	reg := NewRegistry(loader, 3)
	s, err := reg.Open(context.Background(), "p1", backend.Elasticsearch)
	require.NoError(t, err)
	return reg, s
}

func TestRegistry_OpenGetClose(t *testing.T) {
	reg, s := openSession(t)

	got, err := reg.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, reg.Len())

	view := s.View()
	assert.Equal(t, runner.StateIdle, view.State)
	require.NotNil(t, view.Selected)
	assert.Equal(t, "e", view.Selected.ID)
	assert.Len(t, view.Window.Items, 3)
	assert.True(t, view.Window.AllRightLoaded)
	assert.Equal(t, []alerts.Alert{}, view.Alerts)

	require.NoError(t, reg.Close(s.ID))
	_, err = reg.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, reg.Close(s.ID), ErrSessionNotFound)
}

func TestRegistry_OpenEmptyProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := storage_mocks.NewMockSearchConfigurationStore(ctrl)
	loader.EXPECT().Count(gomock.Any(), "p1").Return(0, nil)
	loader.EXPECT().Active(gomock.Any(), "p1").Return(nil, storage.ErrNotFound)

	s, err := NewRegistry(loader, 3).Open(context.Background(), "p1", backend.Solr)
	require.NoError(t, err)
	assert.Nil(t, s.Selected())
	assert.Empty(t, s.View().Window.Items)
}

func TestRegistry_OpenPropagatesErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := storage_mocks.NewMockSearchConfigurationStore(ctrl)
	loader.EXPECT().Count(gomock.Any(), "p1").Return(0, errors.New("database is locked"))

	reg := NewRegistry(loader, 3)
	_, err := reg.Open(context.Background(), "p1", backend.Solr)
	assert.Error(t, err)
	assert.Zero(t, reg.Len())
}

func TestSession_ActsAsRunSink(t *testing.T) {
	_, s := openSession(t)

	s.SetState(runner.StateExecuting)
	assert.Equal(t, runner.StateExecuting, s.State())

	s.Splice(storage.SearchConfigurationSummary{ID: "f", Index: 5, IsActive: true})
	st := s.Window.Snapshot()
	assert.Equal(t, 6, st.TotalCount)
	assert.Equal(t, "f", st.Items[len(st.Items)-1].ID)

	cfg := &storage.SearchConfiguration{ID: "f", Index: 5}
	s.Select(cfg)
	assert.Same(t, cfg, s.Selected())

	s.Alert(alerts.LevelError, "Failed to create query template: disk full")
	list := s.Alerts.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Failed to create query template: disk full", list[0].Message)
}

type blockingRunner struct {
	started chan struct{}
	release chan struct{}
	got     runner.Request
}

func (b *blockingRunner) Run(_ context.Context, req runner.Request, sink runner.Sink) (*runner.Outcome, error) {
	b.got = req
	sink.SetState(runner.StateExecuting)
	close(b.started)
	<-b.release
	sink.SetState(runner.StateIdle)
	return &runner.Outcome{}, nil
}

func TestSession_RunAdmitsOneAtATime(t *testing.T) {
	_, s := openSession(t)
	r := &blockingRunner{started: make(chan struct{}), release: make(chan struct{})}

	done := make(chan error, 1)
	go func() {
		_, err := s.Run(context.Background(), r, runner.Request{ProjectID: "ignored", Query: "{}"})
		done <- err
	}()
	<-r.started
	assert.True(t, s.Running())

	_, err := s.Run(context.Background(), r, runner.Request{})
	assert.ErrorIs(t, err, runner.ErrRunInProgress)

	close(r.release)
	require.NoError(t, <-done)
	assert.False(t, s.Running())
	assert.Equal(t, "p1", r.got.ProjectID, "session project wins over the request")
	assert.Equal(t, backend.Elasticsearch, r.got.Backend)
	assert.Eventually(t, func() bool { return s.State() == runner.StateIdle }, time.Second, time.Millisecond)
}
