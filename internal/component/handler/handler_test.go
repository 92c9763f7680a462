package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"uims/internal/component/handler/mocks"
	"uims/internal/component/mapper"
	"uims/internal/component/models"
	"uims/pkg/domain"
	dErrors "uims/pkg/domain-errors"
	"uims/pkg/platform/httputil"
	"uims/pkg/platform/pagination"
)

type ComponentHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestComponentHandlerSuite(t *testing.T) {
	suite.Run(t, new(ComponentHandlerSuite))
}

func (s *ComponentHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func (s *ComponentHandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ComponentHandlerSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v))
}

func ptr[T any](v T) *T { return &v }

func (s *ComponentHandlerSuite) projector(id domain.ComponentID, content *string) *models.Component {
	draft, err := mapper.Parse(models.ComponentInput{
		Orientation: "North", Width: 2, Length: 2, Height: 2, X: 1, Y: 1,
		Details: models.ProjectorInput{ProjectedHeight: 1.5, ProjectedWidth: 2.5, ProjectedContent: content},
	})
	s.Require().NoError(err)
	c := draft.Materialize(id, 1, mapper.DisplayID(models.KindProjector, id))
	return &c
}

func (s *ComponentHandlerSuite) whiteboard(id domain.ComponentID) *models.Component {
	draft, err := mapper.Parse(models.ComponentInput{
		Orientation: "East", Width: 3, Length: 0.1, Height: 1,
		Details: models.WhiteboardInput{MarkerColor: "Blue"},
	})
	s.Require().NoError(err)
	c := draft.Materialize(id, 1, mapper.DisplayID(models.KindWhiteboard, id))
	return &c
}

func (s *ComponentHandlerSuite) TestAdd() {
	s.Run("projector payload maps to projector input", func() {
		want := models.ComponentInput{
			Orientation: "North", Width: 2, Length: 2, Height: 2, X: 1, Y: 1,
			Details: models.ProjectorInput{ProjectedHeight: 1.5, ProjectedWidth: 2.5, ProjectedContent: ptr("Math")},
		}
		s.service.EXPECT().Add(gomock.Any(), domain.SpaceID(1), want).Return(s.projector(7, ptr("Math")), nil)

		w := s.do(http.MethodPost, "/learning-spaces/1/components", ComponentRequest{
			Type: TypeProjector, Orientation: "North",
			Dimensions:      DimensionsRequest{Width: 2, Length: 2, Height: 2},
			Position:        PositionRequest{X: 1, Y: 1},
			ProjectedHeight: ptr(1.5), ProjectedWidth: ptr(2.5), ProjectedContent: ptr("Math"),
		})
		s.Equal(http.StatusCreated, w.Code)

		var resp ComponentResponse
		s.decode(w, &resp)
		s.Equal(TypeProjector, resp.Type)
		s.Equal("PROJ-7", resp.DisplayID)
		s.Equal(2.5, *resp.ProjectedWidth)
		s.Nil(resp.MarkerColor)
	})

	s.Run("unknown type is rejected before the service", func() {
		w := s.do(http.MethodPost, "/learning-spaces/1/components", map[string]any{"type": "lectern"})
		s.Equal(http.StatusBadRequest, w.Code)

		var resp httputil.ErrorResponse
		s.decode(w, &resp)
		s.Equal(string(dErrors.CodeValidation), resp.Error)
		s.Equal("type", resp.Fields[0].Field)
	})

	s.Run("fields of another variant are rejected", func() {
		w := s.do(http.MethodPost, "/learning-spaces/1/components", ComponentRequest{
			Type: TypeWhiteboard, MarkerColor: ptr("Blue"), ProjectedContent: ptr("Math"),
		})
		s.Equal(http.StatusBadRequest, w.Code)
		var resp httputil.ErrorResponse
		s.decode(w, &resp)
		s.Equal("projected_content", resp.Fields[0].Field)
	})

	s.Run("shape and value failures are reported together", func() {
		w := s.do(http.MethodPost, "/learning-spaces/1/components", ComponentRequest{
			Type: TypeWhiteboard, Orientation: "sideways",
			Dimensions:      DimensionsRequest{Width: 1, Length: 1, Height: 1},
			ProjectedHeight: ptr(2.0),
		})
		s.Equal(http.StatusBadRequest, w.Code)

		var resp httputil.ErrorResponse
		s.decode(w, &resp)
		s.Equal(string(dErrors.CodeValidation), resp.Error)
		got := map[string]string{}
		for _, f := range resp.Fields {
			_, dup := got[f.Field]
			s.False(dup, "field %s reported twice", f.Field)
			got[f.Field] = f.Message
		}
		s.Equal("is not allowed for type whiteboard", got["projected_height"])
		s.Equal("is required", got["marker_color"])
		s.Contains(got, "orientation")
		s.Len(got, 3)
	})

	s.Run("unknown type still reports value failures", func() {
		w := s.do(http.MethodPost, "/learning-spaces/1/components", map[string]any{
			"type": "lectern", "orientation": "North",
			"dimensions": map[string]any{"width": 0, "length": 1, "height": 1},
		})
		s.Equal(http.StatusBadRequest, w.Code)

		var resp httputil.ErrorResponse
		s.decode(w, &resp)
		var names []string
		for _, f := range resp.Fields {
			names = append(names, f.Field)
		}
		s.Equal([]string{"type", "dimensions.width"}, names)
		s.Equal("must be one of projector, whiteboard", resp.Fields[0].Message)
	})

	s.Run("missing variant fields are required", func() {
		w := s.do(http.MethodPost, "/learning-spaces/1/components", ComponentRequest{
			Type: TypeProjector, Orientation: "North",
			Dimensions:     DimensionsRequest{Width: 2, Length: 2, Height: 2},
			ProjectedWidth: ptr(2.5),
		})
		s.Equal(http.StatusBadRequest, w.Code)

		var resp httputil.ErrorResponse
		s.decode(w, &resp)
		s.Require().Len(resp.Fields, 1)
		s.Equal("projected_height", resp.Fields[0].Field)
		s.Equal("is required", resp.Fields[0].Message)
	})

	s.Run("unknown JSON fields are rejected", func() {
		w := s.do(http.MethodPost, "/learning-spaces/1/components", map[string]any{"type": "whiteboard", "colour": "Blue"})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("invalid space id", func() {
		w := s.do(http.MethodPost, "/learning-spaces/abc/components", ComponentRequest{Type: TypeWhiteboard})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("missing space", func() {
		s.service.EXPECT().Add(gomock.Any(), domain.SpaceID(9), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "learning space 9 not found"))
		w := s.do(http.MethodPost, "/learning-spaces/9/components", ComponentRequest{Type: TypeWhiteboard, MarkerColor: ptr("Red")})
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *ComponentHandlerSuite) TestUpdate() {
	s.Run("type mismatch is a bad request", func() {
		s.service.EXPECT().Update(gomock.Any(), domain.SpaceID(1), domain.ComponentID(3), gomock.Any()).
			Return(false, dErrors.New(dErrors.CodeTypeMismatch, "component 3 is a Whiteboard"))

		w := s.do(http.MethodPut, "/learning-spaces/1/components/3", ComponentRequest{
			Type: TypeProjector, ProjectedHeight: ptr(1.0), ProjectedWidth: ptr(1.0),
		})
		s.Equal(http.StatusBadRequest, w.Code)
		var resp httputil.ErrorResponse
		s.decode(w, &resp)
		s.Equal(string(dErrors.CodeTypeMismatch), resp.Error)
	})

	s.Run("success", func() {
		s.service.EXPECT().Update(gomock.Any(), domain.SpaceID(1), domain.ComponentID(4), gomock.Any()).Return(true, nil)
		w := s.do(http.MethodPut, "/learning-spaces/1/components/4", ComponentRequest{Type: TypeWhiteboard, MarkerColor: ptr("Red")})
		s.Equal(http.StatusOK, w.Code)
		var resp UpdateResponse
		s.decode(w, &resp)
		s.True(resp.Updated)
	})
}

func (s *ComponentHandlerSuite) TestGetAndDelete() {
	s.service.EXPECT().GetByID(gomock.Any(), domain.ComponentID(5)).Return(s.whiteboard(5), nil)
	w := s.do(http.MethodGet, "/components/5", nil)
	s.Equal(http.StatusOK, w.Code)
	var resp ComponentResponse
	s.decode(w, &resp)
	s.Equal(TypeWhiteboard, resp.Type)
	s.Equal("Blue", *resp.MarkerColor)
	s.Nil(resp.ProjectedHeight)

	s.service.EXPECT().Delete(gomock.Any(), domain.ComponentID(5)).Return(false, nil)
	w = s.do(http.MethodDelete, "/components/5", nil)
	s.Equal(http.StatusOK, w.Code)
	var del DeleteResponse
	s.decode(w, &del)
	s.False(del.Deleted)

	s.service.EXPECT().GetByID(gomock.Any(), domain.ComponentID(6)).
		Return(nil, dErrors.New(dErrors.CodeCorruptData, "component 6: corrupt row"))
	w = s.do(http.MethodGet, "/components/6", nil)
	s.Equal(http.StatusInternalServerError, w.Code)
	var errResp httputil.ErrorResponse
	s.decode(w, &errResp)
	s.Empty(errResp.Description)
}

func (s *ComponentHandlerSuite) TestEmptyProjectedContentIsSerialized() {
	s.service.EXPECT().GetByID(gomock.Any(), domain.ComponentID(8)).Return(s.projector(8, ptr("")), nil)
	w := s.do(http.MethodGet, "/components/8", nil)

	var raw map[string]any
	s.decode(w, &raw)
	s.Contains(raw, "projected_content")
	s.Equal("", raw["projected_content"])
}

func (s *ComponentHandlerSuite) TestListBySpace() {
	items := []models.Component{*s.projector(1, nil), *s.whiteboard(2)}
	s.service.EXPECT().ListBySpace(gomock.Any(), domain.SpaceID(1), 2, 1, "proj").
		Return(pagination.NewResult(items, 3, pagination.Page{Size: 2, Index: 1}), nil)

	w := s.do(http.MethodGet, "/learning-spaces/1/components?page_size=2&page_index=1&search=proj", nil)
	s.Equal(http.StatusOK, w.Code)

	var resp PageResponse
	s.decode(w, &resp)
	s.Len(resp.Items, 2)
	s.Equal(3, resp.TotalCount)
	s.Equal(2, resp.TotalPages)

	s.Run("page defaults", func() {
		s.service.EXPECT().ListBySpace(gomock.Any(), domain.SpaceID(1), defaultPageSize, 1, "").
			Return(pagination.NewResult[models.Component](nil, 0, pagination.Page{Size: defaultPageSize, Index: 1}), nil)
		w := s.do(http.MethodGet, "/learning-spaces/1/components", nil)
		s.Equal(http.StatusOK, w.Code)
		var resp PageResponse
		s.decode(w, &resp)
		s.NotNil(resp.Items)
	})

	s.Run("non-numeric page", func() {
		w := s.do(http.MethodGet, "/learning-spaces/1/components?page_size=ten", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("zero page index reaches the service", func() {
		s.service.EXPECT().ListBySpace(gomock.Any(), domain.SpaceID(1), defaultPageSize, 0, "").
			Return(pagination.Result[models.Component]{}, dErrors.New(dErrors.CodeBadRequest, "page index must be at least 1"))
		w := s.do(http.MethodGet, "/learning-spaces/1/components?page_index=0", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *ComponentHandlerSuite) TestListAll() {
	s.service.EXPECT().ListAll(gomock.Any(), 5, 2).Return([]models.Component{*s.whiteboard(6)}, nil)
	w := s.do(http.MethodGet, "/components?page_size=5&page_index=2", nil)
	s.Equal(http.StatusOK, w.Code)
	var resp ListResponse
	s.decode(w, &resp)
	s.Require().Len(resp.Items, 1)
	s.Equal("WBD-6", resp.Items[0].DisplayID)
}

func (s *ComponentHandlerSuite) TestHistory() {
	c := s.whiteboard(5)
	snap := mapper.Snapshot(*c)
	s.service.EXPECT().History(gomock.Any(), domain.ComponentID(5)).Return([]models.AuditRecord{{
		ID: uuid.New(), ComponentID: 5, ComponentType: models.KindWhiteboard,
		Action: models.ActionCreated, Snapshot: snap,
		RecordedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}}, nil)

	w := s.do(http.MethodGet, "/components/5/history", nil)
	s.Equal(http.StatusOK, w.Code)
	var resp HistoryResponse
	s.decode(w, &resp)
	s.Require().Len(resp.Records, 1)
	s.Equal("Created", resp.Records[0].Action)
	s.Equal(TypeWhiteboard, resp.Records[0].Type)
	s.Equal("Blue", *resp.Records[0].Snapshot.MarkerColor)
	s.Nil(resp.Records[0].Snapshot.ProjectedHeight)
}
