package publishers

import (
	"time"

	"github.com/ctp-hq/event-gateway/pkg/event"
)

func testMessage() event.Message {
	return event.NewEnvelope(event.Header{
		Type:          event.SurveyLaunched,
		Source:        event.SourceRespondentHome,
		Channel:       event.ChannelRH,
		DateTime:      time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		TransactionID: "tx-123",
	}, event.SurveyLaunchedPayload{
		Response: event.SurveyLaunchedResponse{ResponseID: "abc123"},
	})
}
