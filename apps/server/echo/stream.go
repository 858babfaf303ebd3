package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/r3labs/sse/v2"

	"github.com/darasahq/ubao/storage/memdb"
)

// hub owns the per-lecture SSE streams. Published events carry no payload
// worth reading: they only mean "something changed, re-fetch".
type hub struct {
	srv     *sse.Server
	catalog *memdb.CatalogRepository
}

func newHub(catalog *memdb.CatalogRepository) *hub {
	srv := sse.New()
	srv.AutoReplay = false // late joiners re-fetch anyway; no backlog needed
	return &hub{srv: srv, catalog: catalog}
}

// notify wakes every client watching the lecture's board.
func (h *hub) notify(lectureID string) {
	if h.srv.StreamExists(lectureID) {
		h.srv.Publish(lectureID, &sse.Event{Data: []byte("refresh")})
	}
}

func (h *hub) subscribe(ctx echo.Context) error {
	lectureID := ctx.Param("id")
	if _, err := h.catalog.GetLectureByID(lectureID); err != nil {
		return errHttpNotFound
	}
	if !h.srv.StreamExists(lectureID) {
		h.srv.CreateStream(lectureID)
	}

	// the sse server multiplexes on a "stream" query param
	q := ctx.Request().URL.Query()
	q.Set("stream", lectureID)
	ctx.Request().URL.RawQuery = q.Encode()

	h.srv.ServeHTTP(ctx.Response(), ctx.Request())
	return nil
}

func (h *hub) close() {
	h.srv.Close()
}
