package audit

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestDiscardDispatchIsSilent(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	d := Discard()
	d.Dispatch(Event{BarbershopID: 1, Action: "sale_finalized"})

	assert.Empty(t, buf.String())
}
