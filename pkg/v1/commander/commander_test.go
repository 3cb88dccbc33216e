package commander_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-faker/faker/v4"
	"github.com/jkowalczyk/price-tracker/pkg/v1/commander"
	"github.com/jkowalczyk/price-tracker/pkg/v1/commander/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUniSendRunCycleCommand(t *testing.T) {
	body := []byte(`{"name":"run_cycle"}`)

	tests := map[string]struct {
		senderError error
		wantErr     error
	}{
		"ok": {},
		"sender error": {
			senderError: assert.AnError,
			wantErr:     assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			sender := mocks.NewSender(t)
			sender.On("Send", mock.Anything, body).Return(tt.senderError)

			cmndr := commander.NewTrackerCommander(sender)
			err := cmndr.SendRunCycleCommand(context.TODO())

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}

func TestUniSendTrackCommand(t *testing.T) {
	productURL := faker.URL()
	body := []byte(fmt.Sprintf(`{"name":"track_product","url":"%s"}`, productURL))

	tests := map[string]struct {
		senderError error
		wantErr     error
	}{
		"ok": {},
		"sender error": {
			senderError: assert.AnError,
			wantErr:     assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			sender := mocks.NewSender(t)
			sender.On("Send", mock.Anything, body).Return(tt.senderError)

			cmndr := commander.NewTrackerCommander(sender)
			err := cmndr.SendTrackCommand(context.TODO(), productURL)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}

func TestUniSendSubscribeCommand(t *testing.T) {
	productURL := faker.URL()
	email := faker.Email()
	body := []byte(fmt.Sprintf(`{"name":"subscribe","url":"%s","email":"%s"}`, productURL, email))

	tests := map[string]struct {
		senderError error
		wantErr     error
	}{
		"ok": {},
		"sender error": {
			senderError: assert.AnError,
			wantErr:     assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			sender := mocks.NewSender(t)
			sender.On("Send", mock.Anything, body).Return(tt.senderError)

			cmndr := commander.NewTrackerCommander(sender)
			err := cmndr.SendSubscribeCommand(context.TODO(), productURL, email)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}
