package server

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/leftmike/gcpath"
	"github.com/leftmike/gcpath/internal/cache"
	"github.com/leftmike/gcpath/internal/logging"
	"github.com/leftmike/gcpath/internal/metrics"
	"github.com/leftmike/gcpath/internal/observability"
)

// BoundsResponse is the extent of an analyzed excerpt.
type BoundsResponse struct {
	XMin   float64 `json:"x_min"`
	XMax   float64 `json:"x_max"`
	YMin   float64 `json:"y_min"`
	YMax   float64 `json:"y_max"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
}

// UploadResponse is the analysis of an uploaded program. Bounds and EndOfCut
// are null when undefined.
type UploadResponse struct {
	Distance    float64         `json:"distance"`
	Dialect     string          `json:"dialect"`
	Coordinates gcpath.Path     `json:"coordinates"`
	Bounds      *BoundsResponse `json:"bounds"`
	EndOfCut    *int            `json:"end_of_cut"`
}

// PlotRequest carries a path in the form returned by the upload endpoint.
type PlotRequest struct {
	Dialect     string          `json:"dialect,omitempty"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// HealthHandler reports liveness.
func HealthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

func lineNumber(c *fiber.Ctx, key string) (int, error) {
	v := c.FormValue(key)
	if v == "" {
		return 0, errors.New(key + " is required")
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return n, nil
}

// UploadHandler analyzes lines start_line through end_line of an uploaded
// program.
func UploadHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return errBadRequest(c, "no file part")
		}
		if fh.Filename == "" {
			return errBadRequest(c, "no selected file")
		}
		d, err := gcpath.DialectFor(fh.Filename)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		start, err := lineNumber(c, "start_line")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		end, err := lineNumber(c, "end_line")
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		f, err := fh.Open()
		if err != nil {
			return errInternal(c, "failed to open upload")
		}
		defer f.Close()
		lines, err := gcpath.ReadLines(f)
		if err != nil {
			return errBadRequest(c, "unreadable program: "+err.Error())
		}
		if err := gcpath.CheckRange(len(lines), start, end); err != nil {
			return errBadRequest(c, err.Error())
		}

		resp, err := analyze(c.UserContext(), d, lines, start, end)
		if errors.Is(err, gcpath.ErrDegenerateArc) {
			return errUnprocessable(c, err.Error())
		} else if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(resp)
	}
}

func analyze(ctx context.Context, d gcpath.Dialect, lines []string, start, end int) (*UploadResponse,
	error) {

	log := logging.FromContext(ctx)
	ctx, span := observability.Tracer().Start(ctx, "gcpath.Parse", trace.WithAttributes(
		attribute.String("gcpath.dialect", d.String()),
		attribute.Int("gcpath.lines", len(lines)),
		attribute.Int("gcpath.start_line", start),
		attribute.Int("gcpath.end_line", end),
	))
	res := gcpath.Parse(d, lines, start, end)
	span.SetAttributes(attribute.Int("gcpath.records", res.Path.Len()))
	span.End()

	metrics.ProgramsParsed.WithLabelValues(d.String()).Inc()
	metrics.RecordsExtracted.WithLabelValues(d.String()).Add(float64(res.Path.Len()))

	_, span = observability.Tracer().Start(ctx, "gcpath.TotalDistance")
	defer span.End()
	dist, err := gcpath.TotalDistance(res.Path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "distance failed")
		if errors.Is(err, gcpath.ErrDegenerateArc) {
			metrics.DegenerateArcs.Inc()
		}
		log.Warn("distance failed", "dialect", d.String(), "error", err)
		return nil, err
	}

	resp := &UploadResponse{
		Distance:    gcpath.RoundDistance(dist),
		Dialect:     d.String(),
		Coordinates: res.Path,
	}
	if res.Bounds.Valid() {
		resp.Bounds = &BoundsResponse{
			XMin:   res.Bounds.XMin,
			XMax:   res.Bounds.XMax,
			YMin:   res.Bounds.YMin,
			YMax:   res.Bounds.YMax,
			Length: res.Bounds.Length(),
			Width:  res.Bounds.Width(),
		}
	}
	if res.EndOfCut.Found() {
		n := int(res.EndOfCut)
		resp.EndOfCut = &n
	}

	log.Debug("program analyzed", "dialect", d.String(), "records", res.Path.Len(),
		"distance", resp.Distance)
	return resp, nil
}

// PlotHandler renders a path as a PNG image.
func PlotHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		log := logging.FromContext(ctx)

		var req PlotRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		if len(req.Coordinates) == 0 {
			return errBadRequest(c, "coordinates are required")
		}

		var path gcpath.Path
		if req.Dialect != "" {
			d, err := gcpath.ParseDialect(req.Dialect)
			if err != nil {
				return errBadRequest(c, err.Error())
			}
			path.Dialect = d
		}
		if err := json.Unmarshal(req.Coordinates, &path); err != nil {
			return errBadRequest(c, "invalid coordinates: "+err.Error())
		}

		encoded, err := json.Marshal(path)
		if err != nil {
			return errInternal(c, err.Error())
		}
		key := cache.Key(encoded, renderVariant(path.Dialect, deps.Render))

		if deps.Cache != nil {
			b, ok, err := deps.Cache.Get(ctx, key)
			if err != nil {
				log.Warn("plot cache get failed", "error", err)
			} else if ok {
				metrics.CacheHits.Inc()
				c.Set(fiber.HeaderContentType, "image/png")
				return c.Send(b)
			}
			metrics.CacheMisses.Inc()
		}

		buf := bytebufferpool.Get()
		defer bytebufferpool.Put(buf)
		if err := render(ctx, path, deps.Render, buf); err != nil {
			return errInternal(c, "failed to render plot")
		}

		if deps.Cache != nil {
			if err := deps.Cache.Set(ctx, key, buf.B); err != nil {
				log.Warn("plot cache set failed", "error", err)
			}
		}

		c.Set(fiber.HeaderContentType, "image/png")
		// SetBody copies, so buf can go back to the pool.
		c.Response().SetBody(buf.B)
		return nil
	}
}

func render(ctx context.Context, path gcpath.Path, opts gcpath.RenderOptions,
	buf *bytebufferpool.ByteBuffer) error {

	_, span := observability.Tracer().Start(ctx, "gcpath.Render", trace.WithAttributes(
		attribute.String("gcpath.dialect", path.Dialect.String()),
		attribute.Int("gcpath.records", path.Len()),
	))
	defer span.End()

	start := time.Now()
	err := gcpath.EncodePNG(buf, gcpath.Rasterize(path), opts)
	metrics.RenderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		logging.FromContext(ctx).Error("render failed", "error", err)
	}
	return err
}
