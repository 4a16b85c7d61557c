//go:build integration

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/wordbank/internal/api"
	"github.com/phrazzld/wordbank/internal/mocks"
	"github.com/phrazzld/wordbank/internal/platform/logger"
	"github.com/phrazzld/wordbank/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIntegration_WordReceivesExample(t *testing.T) {
	db := testdb.Open(t)
	log, _ := logger.NewTestLogger()

	completer := &mocks.MockCompleter{}
	completer.On("Complete", mock.Anything, mock.Anything).
		Return(mocks.TextResponse("I ate an apple.\nZjadłem jabłko."), nil)

	app, err := newApplication(testConfig(), log, db, completer)
	require.NoError(t, err)

	ln := listen(t)
	base := "http://" + ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx, ln) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	resp, err := http.Post(base+"/api/words", "application/json",
		strings.NewReader(`{"word":"apple","translation":"jabłko"}`))
	require.NoError(t, err)
	var created api.WordResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	_ = resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var detail api.WordDetailResponse
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/api/words/" + strconv.FormatInt(created.ID, 10))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
			return false
		}
		return !detail.Pending
	}, 10*time.Second, 20*time.Millisecond, "worker should drain the job")

	require.Len(t, detail.Examples, 1)
	assert.Equal(t, "I ate an apple.", detail.Examples[0].Example)
	assert.Equal(t, "Zjadłem jabłko.", detail.Examples[0].Translation)
	completer.AssertNumberOfCalls(t, "Complete", 1)
}
