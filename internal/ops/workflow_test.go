package ops

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avaldes/peticiones/internal/config"
)

// TestFullWorkflow exercises the complete pipeline:
// fetch → normalize → derive per-row values → filter by status and text.
func TestFullWorkflow(t *testing.T) {
	now := time.Now()
	fecha1 := now.AddDate(0, 0, -9).Format("02/01/2006")
	resp1 := now.AddDate(0, 0, -7).Format("02/01/2006")
	fecha2 := now.AddDate(0, 0, -5).Format("02/01/2006")

	body := fmt.Sprintf(
		"Petición,Asignado,Fecha,Respondida,FechaRespuesta\n"+
			"Cambio de grupo,García,%s,Sí,%s\n"+
			"Revisión de examen,Pérez,%s,No,\n"+
			"Convalidación,López,,no,\n",
		fecha1, resp1, fecha2)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	s := NewSession(srv.Client(), &config.Config{CSVURL: srv.URL})
	require.NoError(t, s.Reload(context.Background()))

	rows := s.Rows()
	require.Len(t, rows, 3)

	// Row 1: answered, with an answer date 2 days after the request date.
	require.True(t, rows[0].Answered())
	require.Equal(t, 2, rows[0].Elapsed(now))

	// Row 2: still open, request date 5 days ago, elapsed counted to now.
	require.False(t, rows[1].Answered())
	require.Equal(t, 5, rows[1].Elapsed(now))

	// Row 3: empty request date degrades to zero, never an error.
	require.Equal(t, 0, rows[2].Elapsed(now))

	// Pending selector keeps rows 2 and 3.
	s.SetCriteria(Criteria{Status: StatusPending})
	pending := s.Visible()
	require.Len(t, pending, 2)
	require.Equal(t, "Revisión de examen", pending[0].Request())

	// Adding a text query that only matches row 1's assignee empties the
	// result: both predicates must hold.
	s.SetCriteria(Criteria{Query: "García", Status: StatusPending})
	require.Empty(t, s.Visible())

	// Stats partition the base set.
	stats := ComputeStats(rows, now)
	require.Equal(t, 3, stats.Total)
	require.Equal(t, stats.Total, stats.Answered+stats.Pending)
	require.Equal(t, 5, stats.MaxElapsed)
}
