package receipt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/jagadha/event-booking/internal/model"
)

func TestRender_ProducesPDF(t *testing.T) {
	b := &model.Booking{
		ID:            12,
		Name:          "Priya",
		Location:      "Salem",
		Phone:         "9659796217",
		CustomerEmail: "priya@example.com",
		EventDate:     datatypes.Date(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)),
		Service:       "Wedding Decoration",
		Extras:        "Lighting, Catering",
		Notes:         "evening slot\nstage near entrance",
		Status:        model.BookingStatusPending,
	}

	pdf, err := NewPDFRenderer().Render(b)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRender_MinimalBooking(t *testing.T) {
	// пустые email/notes не должны ломать рендер
	b := &model.Booking{
		ID:        1,
		Name:      "A",
		Location:  "B",
		Phone:     "1",
		EventDate: datatypes.Date(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		Service:   "s",
		Extras:    "e",
	}

	pdf, err := NewPDFRenderer().Render(b)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
