package notify_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	wmserrors "github.com/wms-platform/wms-web/pkg/errors"
	"github.com/wms-platform/wms-web/pkg/notify"
	"github.com/wms-platform/wms-web/pkg/notify/mock"
)

type warehouse struct {
	ID   int
	Name string
}

func TestSmart_SuccessNotifiesOnceAndKeepsValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock.NewMockSink(ctrl)
	sink.EXPECT().Success("ok").Times(1)

	want := &warehouse{ID: 7, Name: "Main"}
	calls := 0
	got, err := notify.Smart(sink, func() (*warehouse, error) {
		calls++
		return want, nil
	}, notify.WithSuccess("ok"))

	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, 1, calls)
}

func TestSmart_FailureNotifiesOnceAndRethrows(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock.NewMockSink(ctrl)
	sink.EXPECT().Error("stock is locked").Times(1)

	original := wmserrors.ErrApplication(500100, "stock is locked")
	_, err := notify.Smart(sink, func() (*warehouse, error) {
		return nil, original
	}, notify.WithSuccess("ok"))

	assert.Same(t, original, err)
	assert.Equal(t, "stock is locked", err.Error())
}

func TestSmart_ErrorMessageOverride(t *testing.T) {
	rec := notify.NewRecorder()
	boom := errors.New("boom")

	_, err := notify.Smart(rec, func() (int, error) { return 0, boom },
		notify.WithErrorMessage("could not save warehouse"))

	assert.Same(t, boom, err)
	assert.Equal(t, []string{"could not save warehouse"}, rec.Errors())
}

func TestSmart_EmptyErrorTextFallsBack(t *testing.T) {
	rec := notify.NewRecorder()

	_, _ = notify.Smart(rec, func() (int, error) { return 0, errors.New("") })

	assert.Equal(t, []string{wmserrors.MessageRequestFailed}, rec.Errors())
}

func TestSmart_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock.NewMockSink(ctrl)

	// No success notification by default, and none for an empty message.
	v, err := notify.Smart(sink, func() (string, error) { return "data", nil })
	require.NoError(t, err)
	assert.Equal(t, "data", v)

	_, err = notify.Smart(sink, func() (string, error) { return "data", nil }, notify.WithSuccess(""))
	require.NoError(t, err)
}

func TestSmart_Quiet(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock.NewMockSink(ctrl)

	boom := errors.New("boom")
	err := notify.SmartExec(sink, func() error { return boom }, notify.Quiet())
	assert.Same(t, boom, err)
}

func TestSmart_NilSink(t *testing.T) {
	v, err := notify.Smart(nil, func() (int, error) { return 3, nil }, notify.WithSuccess("ok"))
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestSinks(t *testing.T) {
	var buf bytes.Buffer
	rec := notify.NewRecorder()
	counts := map[string]int{}

	sink := notify.Multi{
		notify.NewConsoleSink(&buf),
		notify.Counted{Sink: rec, Count: func(level string) { counts[level]++ }},
		notify.Discard,
	}
	sink.Success("warehouse created")
	sink.Error("bad request")

	assert.Contains(t, buf.String(), "warehouse created")
	assert.Contains(t, buf.String(), "bad request")
	assert.Equal(t, []notify.Notification{
		{Level: notify.LevelSuccess, Message: "warehouse created"},
		{Level: notify.LevelError, Message: "bad request"},
	}, rec.All())
	assert.Equal(t, map[string]int{notify.LevelSuccess: 1, notify.LevelError: 1}, counts)

	rec.Reset()
	assert.Empty(t, rec.All())
}

func TestSuccessOnly(t *testing.T) {
	rec := notify.NewRecorder()
	sink := notify.SuccessOnly{Sink: rec}

	sink.Error("boom")
	sink.Success("saved")

	assert.Equal(t, []notify.Notification{{Level: notify.LevelSuccess, Message: "saved"}}, rec.All())
}
