package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/hgraph/internal/codec"
	"github.com/mesh-intelligence/hgraph/internal/memory"
	"github.com/mesh-intelligence/hgraph/internal/metrics"
	"github.com/mesh-intelligence/hgraph/internal/registry"
	"github.com/mesh-intelligence/hgraph/pkg/types"
)

// rejection describes one input record that did not make it into the store.
type rejection struct {
	Position int    `json:"position"`
	Kind     string `json:"kind,omitempty"`
	Type     string `json:"type,omitempty"`
	ID       string `json:"id,omitempty"`
	Rule     string `json:"rule,omitempty"`
	Error    string `json:"error"`
}

type orphan struct {
	Kind         string `json:"kind"`
	RelationID   string `json:"relation_id"`
	RelationType string `json:"relation_type"`
	MissingID    string `json:"missing_id"`
}

// report is the outcome of ingesting one record stream.
type report struct {
	Input    string           `json:"input"`
	Records  int              `json:"records"`
	Admitted memory.Stats     `json:"admitted"`
	Rejected []rejection      `json:"rejected"`
	Orphans  []orphan         `json:"orphans"`
	Metrics  []metrics.Sample `json:"metrics,omitempty"`
}

// failed reports whether any record was rejected.
func (r *report) failed() bool {
	return len(r.Rejected) > 0
}

// ingestion holds what one run of ingest produced.
type ingestion struct {
	graph     *memory.Hypergraph
	collector *metrics.Collector
	report    *report
}

// ingest streams the records at path into a fresh store, recording every
// record that fails to decode, load or validate. "-" reads standard input.
func (a *app) ingest(path string, in io.Reader, reg *registry.Registry) (*ingestion, error) {
	s, err := settings(a.cfg)
	if err != nil {
		return nil, userError("config %s: %w", cfgKeyOrphanPolicy, err)
	}
	def, err := defaultFormat(a.cfg)
	if err != nil {
		return nil, userError("config %s: %w", cfgKeyFormat, err)
	}

	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, userError("open input: %w", err)
		}
		defer f.Close()
		in = f
	}
	format := codec.FormatFromPath(path, def)
	r, err := codec.NewReader(in, format)
	if err != nil {
		return nil, userError("%w", err)
	}

	collector := metrics.NewCollector()
	g, err := memory.NewHypergraph(s, memory.WithLogger(a.logger), memory.WithObserver(collector))
	if err != nil {
		return nil, userError("%w", err)
	}

	rep := &report{Input: path, Rejected: []rejection{}, Orphans: []orphan{}}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var re *codec.RecordError
		if errors.As(err, &re) {
			rep.Records++
			rep.Rejected = append(rep.Rejected, rejection{Position: re.Position, Error: re.Err.Error()})
			continue
		}
		if err != nil {
			return nil, sysError("read %s: %w", path, err)
		}
		rep.Records++
		if rej := admit(reg, g, rec); rej != nil {
			rej.Position = r.Position()
			rep.Rejected = append(rep.Rejected, *rej)
		}
	}

	rep.Admitted = g.Stats()
	for _, o := range g.Orphans() {
		rep.Orphans = append(rep.Orphans, orphan{
			Kind:         string(o.Kind),
			RelationID:   o.RelationID.String(),
			RelationType: o.RelationType,
			MissingID:    o.MissingID.String(),
		})
	}
	a.logger.Info("ingested", "input", path, "format", format, "records", rep.Records,
		"rejected", len(rep.Rejected), "orphans", len(rep.Orphans))
	return &ingestion{graph: g, collector: collector, report: rep}, nil
}

// admit loads one record and adds it to g. It returns nil on success.
func admit(reg *registry.Registry, g *memory.Hypergraph, rec types.Record) *rejection {
	rej := &rejection{Kind: string(rec.Kind()), Type: rec.TypeName()}
	if id, ok := rec[types.FieldID].(string); ok {
		rej.ID = id
	}

	v, err := reg.LoadRecord(rec)
	if err != nil {
		rej.Error = err.Error()
		return rej
	}
	switch e := v.(type) {
	case *types.Node:
		err = g.AddNode(e)
	case *types.Edge:
		rej.ID = e.ID.String()
		err = g.AddEdge(e)
	case *types.Hyperedge:
		rej.ID = e.ID.String()
		err = g.AddHyperedge(e)
	default:
		err = fmt.Errorf("unexpected entity %T", v)
	}
	if err == nil {
		return nil
	}
	var cv *types.ConstraintViolation
	if errors.As(err, &cv) {
		rej.Rule = string(cv.Rule)
	}
	rej.Error = err.Error()
	return rej
}

// records returns every stored entity as a record: nodes, then edges, then
// hyperedges, each in insertion order.
func records(g *memory.Hypergraph) []types.Record {
	var out []types.Record
	for _, n := range g.ListNodes() {
		out = append(out, n.Record())
	}
	for _, e := range g.ListEdges() {
		out = append(out, e.Record())
	}
	for _, h := range g.ListHyperedges() {
		out = append(out, h.Record())
	}
	return out
}

func shortID(s string) string {
	if _, err := uuid.Parse(s); err == nil && len(s) > 8 {
		return s[:8]
	}
	return s
}
