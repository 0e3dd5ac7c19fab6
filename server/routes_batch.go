// routes_batch.go - Handler fuer Index-Info und Batches
// Enthaelt: InfoHandler(), BatchHandler(), BatchStatsHandler()

package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/7blacky7/calibprep/calib"
)

// InfoResponse beschreibt den geladenen Index und die Vorverarbeitung
type InfoResponse struct {
	Entries    int    `json:"entries"`
	BatchSize  int    `json:"batch_size"`
	NumBatches int    `json:"num_batches"`
	InputName  string `json:"input_name"`
	Mode       string `json:"mode"`
	Shape      []int  `json:"shape,omitempty"` // nur im Normalize-Modus fest
}

// InfoHandler gibt die Eckdaten des Iterators zurueck
func (s *Server) InfoHandler(c *gin.Context) {
	cfg := s.it.Config()

	c.JSON(http.StatusOK, InfoResponse{
		Entries:    s.it.Len(),
		BatchSize:  cfg.BatchSize,
		NumBatches: s.it.NumBatches(),
		InputName:  cfg.InputName,
		Mode:       cfg.Pipeline.Mode().String(),
		Shape:      cfg.Pipeline.OutputShape(),
	})
}

// BatchHandler gibt Iteration :iter mit Feed zurueck
func (s *Server) BatchHandler(c *gin.Context) {
	b, ok := s.batch(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, b)
}

// BatchStatsHandler gibt die Wertebereich-Statistik von Iteration :iter zurueck
func (s *Server) BatchStatsHandler(c *gin.Context) {
	b, ok := s.batch(c)
	if !ok {
		return
	}

	stats, err := calib.Summarize(b)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// batch parst :iter und laedt den Batch. Bei Fehlern ist die Response bereits geschrieben.
func (s *Server) batch(c *gin.Context) (*calib.Batch, bool) {
	k, err := strconv.Atoi(c.Param("iter"))
	if err != nil {
		writeError(c, fmt.Errorf("%w: iteration %q is not a number", errBadParameter, c.Param("iter")))
		return nil, false
	}

	b, err := s.it.NextBatch(c.Request.Context(), k)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return b, true
}
