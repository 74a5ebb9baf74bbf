package reports

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"civic-reports/internal/blob"
	"civic-reports/internal/cache"
	"civic-reports/internal/docstore"
	"civic-reports/internal/middleware"
	"civic-reports/internal/model"
	"civic-reports/internal/repository"
	"civic-reports/internal/service"
	"civic-reports/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type testValidator struct{ v *validator.Validate }

func (t testValidator) Validate(i any) error { return t.v.Struct(i) }

func noopCache() *cache.FakeCache {
	return &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult("", redis.Nil)
		},
		SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			return redis.NewStatusResult("OK", nil)
		},
		DelFn: func(_ context.Context, keys ...string) *redis.IntCmd {
			return redis.NewIntResult(int64(len(keys)), nil)
		},
	}
}

func newService(blobs blob.Storage) (*service.ReportService, *repository.Reports) {
	reports := repository.NewReports(docstore.NewMemoryStore())
	return service.NewReportService(reports, blobs, noopCache(), worker.NewPool(1)), reports
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = testValidator{v: validator.New()}
	return e
}

func ctxWithUser(e *echo.Echo, req *http.Request, user *model.User) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	if user != nil {
		ctx.Set(middleware.ContextUserKey, user)
	}
	return ctx, rec
}

func multipartBody(t *testing.T, fields map[string]string, images map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for name, content := range images {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="files"; filename="`+name+`"`)
		if strings.HasSuffix(name, ".txt") {
			h.Set("Content-Type", "text/plain")
		} else {
			h.Set("Content-Type", "image/jpeg")
		}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"title":       "streetlight",
		"description": "broken",
		"category":    "Infrastructure",
		"urgency":     "High",
		"lat":         "25.03",
		"lng":         "121.56",
	}
}

func TestCreateHandlerJSON(t *testing.T) {
	user := &model.User{ID: "u1"}
	e := newEcho()

	t.Run("success", func(t *testing.T) {
		svc, reports := newService(&blob.FakeStorage{})
		body := `{"title":"t","description":"d","category":"c","urgency":"High","lat":25.03,"lng":121.56}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		ctx, rec := ctxWithUser(e, req, user)

		require.NoError(t, CreateHandler(svc)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), "report submitted successfully")

		all, err := reports.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, all, 1)
		require.Equal(t, "u1", all[0].UserID)
	})

	t.Run("missing coordinates", func(t *testing.T) {
		svc, _ := newService(&blob.FakeStorage{})
		body := `{"title":"t","description":"d","category":"c","urgency":"High"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		ctx, rec := ctxWithUser(e, req, user)

		require.NoError(t, CreateHandler(svc)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no user in context", func(t *testing.T) {
		svc, _ := newService(&blob.FakeStorage{})
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		ctx, rec := ctxWithUser(e, req, nil)

		require.NoError(t, CreateHandler(svc)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCreateHandlerMultipart(t *testing.T) {
	user := &model.User{ID: "u1"}
	e := newEcho()

	t.Run("with images", func(t *testing.T) {
		var uploaded []string
		blobs := &blob.FakeStorage{
			UploadFn: func(_ context.Context, filename, _ string, _ io.Reader) (string, error) {
				uploaded = append(uploaded, filename)
				return "http://cdn/" + filename, nil
			},
		}
		svc, reports := newService(blobs)

		buf, contentType := multipartBody(t, validFields(), map[string]string{
			"a.jpg":     "jpeg-bytes",
			"notes.txt": "skip me",
		})
		req := httptest.NewRequest(http.MethodPost, "/", buf)
		req.Header.Set(echo.HeaderContentType, contentType)
		ctx, rec := ctxWithUser(e, req, user)

		require.NoError(t, CreateHandler(svc)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), "report with image(s) submitted successfully")
		require.Equal(t, []string{"a.jpg"}, uploaded)

		all, err := reports.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, all, 1)
		require.Equal(t, []string{"http://cdn/a.jpg"}, all[0].Images)
	})

	t.Run("bad latitude", func(t *testing.T) {
		svc, _ := newService(&blob.FakeStorage{})
		fields := validFields()
		fields["lat"] = "north"
		buf, contentType := multipartBody(t, fields, nil)
		req := httptest.NewRequest(http.MethodPost, "/", buf)
		req.Header.Set(echo.HeaderContentType, contentType)
		ctx, rec := ctxWithUser(e, req, user)

		require.NoError(t, CreateHandler(svc)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "lat must be a number")
	})

	t.Run("missing field", func(t *testing.T) {
		svc, _ := newService(&blob.FakeStorage{})
		fields := validFields()
		fields["title"] = ""
		buf, contentType := multipartBody(t, fields, nil)
		req := httptest.NewRequest(http.MethodPost, "/", buf)
		req.Header.Set(echo.HeaderContentType, contentType)
		ctx, rec := ctxWithUser(e, req, user)

		require.NoError(t, CreateHandler(svc)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMineHandler(t *testing.T) {
	e := newEcho()
	svc, _ := newService(&blob.FakeStorage{})

	alice := &model.User{ID: "u1"}
	_, err := svc.Submit(context.Background(), alice, service.SubmitInput{
		Title: "t", Description: "d", Category: "c", Urgency: "High", Lat: 1, Lng: 2,
	}, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx, rec := ctxWithUser(e, req, alice)
	require.NoError(t, MineHandler(svc)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"title":"t"`)

	ctx, rec = ctxWithUser(e, req, &model.User{ID: "u2"})
	require.NoError(t, MineHandler(svc)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]\n", rec.Body.String())
}

func TestDetailHandler(t *testing.T) {
	e := newEcho()
	svc, _ := newService(&blob.FakeStorage{})

	id, err := svc.Submit(context.Background(), &model.User{ID: "u1"}, service.SubmitInput{
		Title: "t", Description: "d", Category: "c", Urgency: "High", Lat: 1, Lng: 2,
	}, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues(id)
	require.NoError(t, DetailHandler(svc)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), id)

	rec = httptest.NewRecorder()
	ctx = e.NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("missing")
	require.NoError(t, DetailHandler(svc)(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteHandler(t *testing.T) {
	e := newEcho()
	svc, reports := newService(&blob.FakeStorage{})

	owner := &model.User{ID: "u1"}
	id, err := svc.Submit(context.Background(), owner, service.SubmitInput{
		Title: "t", Description: "d", Category: "c", Urgency: "High", Lat: 1, Lng: 2,
	}, nil)
	require.NoError(t, err)

	// 非擁有者
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	ctx, rec := ctxWithUser(e, req, &model.User{ID: "u2"})
	ctx.SetParamNames("id")
	ctx.SetParamValues(id)
	require.NoError(t, DeleteHandler(svc)(ctx))
	require.Equal(t, http.StatusForbidden, rec.Code)

	// 擁有者
	ctx, rec = ctxWithUser(e, req, owner)
	ctx.SetParamNames("id")
	ctx.SetParamValues(id)
	require.NoError(t, DeleteHandler(svc)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "report deleted successfully")

	_, err = reports.GetByID(context.Background(), id)
	require.Error(t, err)

	// 已刪除
	ctx, rec = ctxWithUser(e, req, owner)
	ctx.SetParamNames("id")
	ctx.SetParamValues(id)
	require.NoError(t, DeleteHandler(svc)(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListHandler(t *testing.T) {
	e := newEcho()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, ListHandler()(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
}
