package handler

import (
	"time"

	"uims/internal/component/models"
	"uims/pkg/platform/pagination"
)

type DimensionsResponse struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
}

type PositionResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ComponentResponse mirrors ComponentRequest with the store-assigned fields
// added. Only the variant's own fields are set.
type ComponentResponse struct {
	ID          int64              `json:"id"`
	DisplayID   string             `json:"display_id"`
	SpaceID     int64              `json:"space_id"`
	Type        string             `json:"type"`
	Orientation string             `json:"orientation"`
	Dimensions  DimensionsResponse `json:"dimensions"`
	Position    PositionResponse   `json:"position"`

	ProjectedHeight  *float64 `json:"projected_height,omitempty"`
	ProjectedWidth   *float64 `json:"projected_width,omitempty"`
	ProjectedContent *string  `json:"projected_content,omitempty"`

	MarkerColor *string `json:"marker_color,omitempty"`
}

type PageResponse struct {
	Items      []ComponentResponse `json:"items"`
	TotalCount int                 `json:"total_count"`
	TotalPages int                 `json:"total_pages"`
	PageIndex  int                 `json:"page_index"`
	PageSize   int                 `json:"page_size"`
}

type ListResponse struct {
	Items []ComponentResponse `json:"items"`
}

type UpdateResponse struct {
	Updated bool `json:"updated"`
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

type SnapshotResponse struct {
	SpaceID          *int64   `json:"space_id,omitempty"`
	DisplayID        *string  `json:"display_id,omitempty"`
	Orientation      *string  `json:"orientation,omitempty"`
	Width            *float64 `json:"width,omitempty"`
	Length           *float64 `json:"length,omitempty"`
	Height           *float64 `json:"height,omitempty"`
	X                *float64 `json:"x,omitempty"`
	Y                *float64 `json:"y,omitempty"`
	Z                *float64 `json:"z,omitempty"`
	IsDeleted        *bool    `json:"is_deleted,omitempty"`
	ProjectedHeight  *float64 `json:"projected_height,omitempty"`
	ProjectedWidth   *float64 `json:"projected_width,omitempty"`
	ProjectedContent *string  `json:"projected_content,omitempty"`
	MarkerColor      *string  `json:"marker_color,omitempty"`
}

type AuditRecordResponse struct {
	ID          string           `json:"id"`
	ComponentID int64            `json:"component_id"`
	Type        string           `json:"type"`
	Action      string           `json:"action"`
	RecordedAt  time.Time        `json:"recorded_at"`
	Snapshot    SnapshotResponse `json:"snapshot"`
}

type HistoryResponse struct {
	Records []AuditRecordResponse `json:"records"`
}

// variantResponses writes each variant's fields and discriminator.
var variantResponses = map[models.Kind]struct {
	typ   string
	write func(d models.Details, resp *ComponentResponse)
}{
	models.KindProjector: {
		typ: TypeProjector,
		write: func(d models.Details, resp *ComponentResponse) {
			p := d.(models.Projector)
			h, w := p.ProjectionArea.Height.Float64(), p.ProjectionArea.Width.Float64()
			resp.ProjectedHeight = &h
			resp.ProjectedWidth = &w
			resp.ProjectedContent = p.ProjectedContent
		},
	},
	models.KindWhiteboard: {
		typ: TypeWhiteboard,
		write: func(d models.Details, resp *ComponentResponse) {
			color := d.(models.Whiteboard).MarkerColor.String()
			resp.MarkerColor = &color
		},
	},
}

func typeOf(kind models.Kind) string {
	return variantResponses[kind].typ
}

func toComponentResponse(c models.Component) ComponentResponse {
	resp := ComponentResponse{
		ID:          int64(c.ID),
		DisplayID:   c.DisplayID,
		SpaceID:     int64(c.SpaceID),
		Orientation: c.Orientation.String(),
		Dimensions: DimensionsResponse{
			Width:  c.Dimensions.Width.Float64(),
			Length: c.Dimensions.Length.Float64(),
			Height: c.Dimensions.Height.Float64(),
		},
		Position: PositionResponse{
			X: c.Position.X.Float64(),
			Y: c.Position.Y.Float64(),
			Z: c.Position.Z.Float64(),
		},
	}
	variant := variantResponses[c.Kind()]
	resp.Type = variant.typ
	variant.write(c.Details, &resp)
	return resp
}

func toComponentResponses(items []models.Component) []ComponentResponse {
	out := make([]ComponentResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toComponentResponse(c))
	}
	return out
}

func toPageResponse(res pagination.Result[models.Component]) PageResponse {
	return PageResponse{
		Items:      toComponentResponses(res.Items),
		TotalCount: res.TotalCount,
		TotalPages: res.TotalPages,
		PageIndex:  res.PageIndex,
		PageSize:   res.PageSize,
	}
}

func toHistoryResponse(records []models.AuditRecord) HistoryResponse {
	out := make([]AuditRecordResponse, 0, len(records))
	for _, r := range records {
		snap := r.Snapshot
		out = append(out, AuditRecordResponse{
			ID:          r.ID.String(),
			ComponentID: int64(r.ComponentID),
			Type:        typeOf(r.ComponentType),
			Action:      r.Action.String(),
			RecordedAt:  r.RecordedAt,
			Snapshot: SnapshotResponse{
				SpaceID:          snap.SpaceID,
				DisplayID:        snap.DisplayID,
				Orientation:      snap.Orientation,
				Width:            snap.Width,
				Length:           snap.Length,
				Height:           snap.Height,
				X:                snap.X,
				Y:                snap.Y,
				Z:                snap.Z,
				IsDeleted:        snap.IsDeleted,
				ProjectedHeight:  snap.ProjectedHeight,
				ProjectedWidth:   snap.ProjectedWidth,
				ProjectedContent: snap.ProjectedContent,
				MarkerColor:      snap.MarkerColor,
			},
		})
	}
	return HistoryResponse{Records: out}
}
