package tools

import (
	"fmt"

	"github.com/insightone/insightone-mcp/internal/query"
	"github.com/insightone/insightone-mcp/pkg/contenttype"
	"github.com/insightone/insightone-mcp/pkg/explorer"
	"github.com/insightone/insightone-mcp/pkg/jsoncompact"
	"github.com/insightone/insightone-mcp/pkg/jsonschema"
	"github.com/insightone/insightone-mcp/pkg/shape"
	"github.com/insightone/insightone-mcp/pkg/types"
)

// Body modes for displaying a result payload.
const (
	BodyModeFull    = "full"
	BodyModeCompact = "compact"
	BodyModeSchema  = "schema"
)

// ResultView is an execution result shaped for display.
type ResultView struct {
	ResultID    string            `json:"result_id"`
	EndpointID  string            `json:"endpoint_id"`
	Method      string            `json:"method"`
	URL         string            `json:"url"`
	Status      int               `json:"status"`
	ContentKind string            `json:"content_kind"`
	DurationMs  int64             `json:"duration_ms"`
	Headers     map[string]string `json:"response_headers,omitempty"`

	// Payload is the JSON payload in full or compact mode, or the error
	// payload of a failed call.
	Payload    any                  `json:"payload,omitempty"`
	Schema     any                  `json:"schema,omitempty"`
	Records    int                  `json:"records,omitempty"`
	Compaction *CompactionInfo      `json:"compaction,omitempty"`
	CSV        *explorer.CSVPreview `json:"csv,omitempty"`
	JQ         *query.Result        `json:"jq,omitempty"`
	Failed     bool                 `json:"failed,omitempty"`

	Resource types.ResourceRef `json:"resource"`
	Hint     string            `json:"hint,omitempty"`
}

// CompactionInfo reports what compact mode removed.
type CompactionInfo struct {
	TrimmedArrays    int `json:"trimmed_arrays"`
	OmittedItems     int `json:"omitted_items"`
	TruncatedStrings int `json:"truncated_strings"`
}

// ViewOptions controls how a result is shaped.
type ViewOptions struct {
	BodyMode       string
	Compact        jsoncompact.Options
	CSVPreview     int
	IncludeHeaders bool
}

// ValidBodyMode reports whether mode is empty or a known body mode.
func ValidBodyMode(mode string) bool {
	switch mode {
	case "", BodyModeFull, BodyModeCompact, BodyModeSchema:
		return true
	}
	return false
}

// NewResultView shapes res. CSV results always get a preview, whatever the
// body mode; schema mode adds a column profile.
func NewResultView(res *explorer.ExecutionResult, opts ViewOptions) (*ResultView, error) {
	view := &ResultView{
		ResultID:    res.ID,
		EndpointID:  res.EndpointID,
		Method:      res.Method,
		URL:         res.URL,
		Status:      res.Status,
		ContentKind: string(res.ContentKind),
		DurationMs:  res.DurationMs,
		Failed:      res.Failed(),
	}
	if opts.IncludeHeaders {
		view.Headers = res.Headers
	}

	if text, ok := res.CSV(); ok {
		preview := explorer.NewCSVPreview(text, opts.CSVPreview)
		view.CSV = &preview
		view.Resource = resultRef(res.ID, MimeCSV)
		if opts.BodyMode == BodyModeSchema {
			if profile, err := shape.ProfileCSV(text); err == nil {
				view.Schema = profile
				view.Records = profile.Rows
			}
		}
		if preview.Truncated {
			view.Hint = fmt.Sprintf("CSV preview shows %d of %d characters. Read %s for the full text.",
				len([]rune(preview.Preview)), preview.TotalChars, view.Resource.URI)
		}
		return view, nil
	}

	view.Resource = resultRef(res.ID, MimeJSON)
	if view.Failed || res.Payload == nil {
		payload, err := types.ToAny(res.Payload)
		if err != nil {
			return nil, err
		}
		view.Payload = payload
		return view, nil
	}

	switch opts.BodyMode {
	case BodyModeSchema:
		inferred := jsonschema.Infer(res.Payload)
		schema, err := types.ToAny(inferred.Schema)
		if err != nil {
			return nil, fmt.Errorf("encoding inferred schema: %w", err)
		}
		view.Schema = schema
		view.Records = inferred.Records

	case BodyModeFull:
		view.Payload = res.Payload

	default:
		compacted := jsoncompact.Compact(res.Payload, opts.Compact)
		view.Payload = compacted.Value
		if compacted.Changed() {
			view.Compaction = &CompactionInfo{
				TrimmedArrays:    compacted.TrimmedArrays,
				OmittedItems:     compacted.OmittedItems,
				TruncatedStrings: compacted.TruncatedStrings,
			}
			view.Hint = fmt.Sprintf("Payload compacted. Use body_mode=full, a jq filter, or read %s for everything.", view.Resource.URI)
		}
	}
	return view, nil
}

// ApplyJQ runs expression against the JSON payload of res and stores the
// outcome on view.
func ApplyJQ(engine *query.Engine, res *explorer.ExecutionResult, view *ResultView, expression string) error {
	if res.ContentKind != contenttype.KindJSON || res.Failed() {
		return ErrInvalidInput("jq applies to successful JSON results only")
	}
	out, err := engine.QueryValue(res.Payload, expression)
	if err != nil {
		return ErrInvalidInput(err.Error())
	}
	view.JQ = out
	return nil
}
