package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"uims/internal/component/models"
	"uims/internal/platform/database"
	"uims/pkg/domain"
)

const auditTable = "component_audit"

var auditColumns = []string{
	"id",
	"component_id",
	"component_type",
	"action",
	"recorded_at",
	"space_id",
	"display_id",
	"orientation",
	"width",
	"length",
	"height",
	"x",
	"y",
	"z",
	"is_deleted",
	"projected_height",
	"projected_width",
	"projected_content",
	"marker_color",
}

// AppendAudit inserts record. The audit table is append-only: no method
// updates or deletes it.
func (s *SQLStore) AppendAudit(ctx context.Context, record models.AuditRecord) error {
	snap := record.Snapshot
	query, args, err := s.sb.Insert(auditTable).
		Columns(auditColumns...).
		Values(
			record.ID.String(),
			int64(record.ComponentID),
			record.ComponentType.String(),
			record.Action.String(),
			record.RecordedAt.UTC(),
			nullInt64(snap.SpaceID),
			nullString(snap.DisplayID),
			nullString(snap.Orientation),
			nullFloat64(snap.Width),
			nullFloat64(snap.Length),
			nullFloat64(snap.Height),
			nullFloat64(snap.X),
			nullFloat64(snap.Y),
			nullFloat64(snap.Z),
			nullBool(snap.IsDeleted),
			nullFloat64(snap.ProjectedHeight),
			nullFloat64(snap.ProjectedWidth),
			nullString(snap.ProjectedContent),
			nullString(snap.MarkerColor),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert audit record: %w", err)
	}
	if _, err := s.exec(ctx).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert audit record: %w", database.Classify(err))
	}
	return nil
}

// ListAudit returns every record for id in append order.
func (s *SQLStore) ListAudit(ctx context.Context, id domain.ComponentID) ([]models.AuditRecord, error) {
	query, args, err := s.sb.Select(auditColumns...).
		From(auditTable).
		Where(sq.Eq{"component_id": int64(id)}).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list audit records: %w", err)
	}

	rows, err := s.exec(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", database.Classify(err))
	}
	defer rows.Close()

	var out []models.AuditRecord
	for rows.Next() {
		record, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit records: %w", database.Classify(err))
	}
	return out, nil
}

func scanAudit(rows *sql.Rows) (models.AuditRecord, error) {
	var (
		rawID            string
		componentID      int64
		componentType    string
		action           string
		recordedAt       time.Time
		spaceID          sql.NullInt64
		displayID        sql.NullString
		orientation      sql.NullString
		width            sql.NullFloat64
		length           sql.NullFloat64
		height           sql.NullFloat64
		x                sql.NullFloat64
		y                sql.NullFloat64
		z                sql.NullFloat64
		isDeleted        sql.NullBool
		projectedHeight  sql.NullFloat64
		projectedWidth   sql.NullFloat64
		projectedContent sql.NullString
		markerColor      sql.NullString
	)
	if err := rows.Scan(
		&rawID, &componentID, &componentType, &action, &recordedAt,
		&spaceID, &displayID, &orientation,
		&width, &length, &height,
		&x, &y, &z,
		&isDeleted,
		&projectedHeight, &projectedWidth, &projectedContent,
		&markerColor,
	); err != nil {
		return models.AuditRecord{}, fmt.Errorf("scan audit record: %w", err)
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return models.AuditRecord{}, fmt.Errorf("parse audit record id %q: %w", rawID, err)
	}

	return models.AuditRecord{
		ID:            id,
		ComponentID:   domain.ComponentID(componentID),
		ComponentType: models.Kind(componentType),
		Action:        models.Action(action),
		RecordedAt:    recordedAt.UTC(),
		Snapshot: models.Snapshot{
			SpaceID:          int64Ptr(spaceID),
			DisplayID:        stringPtr(displayID),
			Orientation:      stringPtr(orientation),
			Width:            float64Ptr(width),
			Length:           float64Ptr(length),
			Height:           float64Ptr(height),
			X:                float64Ptr(x),
			Y:                float64Ptr(y),
			Z:                float64Ptr(z),
			IsDeleted:        boolPtr(isDeleted),
			ProjectedHeight:  float64Ptr(projectedHeight),
			ProjectedWidth:   float64Ptr(projectedWidth),
			ProjectedContent: stringPtr(projectedContent),
			MarkerColor:      stringPtr(markerColor),
		},
	}, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullFloat64(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func float64Ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func boolPtr(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	return &v.Bool
}
