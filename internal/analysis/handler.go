package analysis

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ats-checker/internal/shared/server/respond"
	"ats-checker/internal/shared/storage/object"
	"ats-checker/internal/shared/util"
)

// multipart framing and the industry field on top of the file itself
const multipartOverhead = 64 << 10

// Handler wires HTTP handlers to the analysis service.
type Handler struct {
	Svc               *Service
	Store             object.Reader
	MaxUploadBytes    int64
	AllowedExtensions []string
}

// NewHandler constructs a Handler. store may be nil when no object storage
// is configured.
func NewHandler(svc *Service, store object.Reader, maxUploadBytes int64, allowed []string) *Handler {
	return &Handler{Svc: svc, Store: store, MaxUploadBytes: maxUploadBytes, AllowedExtensions: allowed}
}

// RegisterRoutes attaches the catalog and analysis routes to the router
// group. mw runs before each of them.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	rg.GET("/industries", chain(mw, h.listIndustries)...)
	rg.POST("/analyses", chain(mw, h.upload)...)
	rg.POST("/analyses/from-storage", chain(mw, h.fromStorage)...)
}

// RegisterLegacyRoutes keeps the original multipart upload path.
func (h *Handler) RegisterLegacyRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	rg.POST("/upload-resume", chain(mw, h.upload)...)
}

func chain(mw []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw)+1)
	out = append(out, mw...)
	return append(out, handler)
}

func (h *Handler) upload(c *gin.Context) {
	limit := h.maxBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			h.fail(c, ErrDocumentTooLarge)
			return
		}
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "file is required", []map[string]string{
			{"field": "file", "issue": "required"},
		})
		return
	}
	if fh.Size > limit {
		h.fail(c, fmt.Errorf("%w: %d bytes", ErrDocumentTooLarge, fh.Size))
		return
	}
	name, err := util.SanitizeFileName(fh.Filename)
	if err != nil || !h.allowed(name) {
		h.fail(c, fmt.Errorf("%w: %q", ErrInvalidFileType, fh.Filename))
		return
	}

	f, err := fh.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "could not read uploaded file", nil)
		return
	}
	defer f.Close()
	data, err := readLimited(f, limit)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.run(c, Request{
		Data:         data,
		FileName:     name,
		DeclaredMIME: fh.Header.Get("Content-Type"),
		Industry:     strings.TrimSpace(c.PostForm("industry")),
		SkipAI:       isTrue(c.PostForm("skipAi")),
		RequestID:    c.GetString("requestId"),
	})
}

type storageRequest struct {
	Key      string `json:"key" binding:"required,max=1024"`
	Industry string `json:"industry" binding:"max=100"`
	SkipAI   bool   `json:"skipAi"`
}

func (h *Handler) fromStorage(c *gin.Context) {
	var req storageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "key is required", []map[string]string{
			{"field": "key", "issue": "required"},
		})
		return
	}
	if h.Store == nil {
		h.fail(c, ErrStorageUnconfigured)
		return
	}
	if !h.allowed(req.Key) {
		h.fail(c, fmt.Errorf("%w: %q", ErrInvalidFileType, req.Key))
		return
	}

	rc, err := h.Store.Open(c.Request.Context(), req.Key)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) || errors.Is(err, object.ErrInvalidKey) {
			h.fail(c, err)
			return
		}
		respond.Error(c, http.StatusBadGateway, ErrorCodeStorage, "failed to read document from storage", nil)
		return
	}
	defer rc.Close()

	data, err := readLimited(rc, h.maxBytes())
	if err != nil {
		if errors.Is(err, ErrDocumentTooLarge) {
			h.fail(c, err)
			return
		}
		respond.Error(c, http.StatusBadGateway, ErrorCodeStorage, "failed to read document from storage", nil)
		return
	}

	name := req.Key
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	h.run(c, Request{
		Data:      data,
		FileName:  name,
		Industry:  strings.TrimSpace(req.Industry),
		SkipAI:    req.SkipAI,
		RequestID: c.GetString("requestId"),
	})
}

type industryView struct {
	Name             string   `json:"name"`
	Aliases          []string `json:"aliases"`
	RequiredSections []string `json:"requiredSections"`
	Keywords         []string `json:"keywords"`
}

func (h *Handler) listIndustries(c *gin.Context) {
	catalog := h.Svc.Industries()
	views := make([]industryView, 0, len(catalog.Profiles))
	for _, p := range catalog.Profiles {
		v := industryView{
			Name:             p.Name,
			Aliases:          append([]string{}, p.Aliases...),
			RequiredSections: append([]string{}, p.RequiredSections...),
			Keywords:         make([]string, 0, len(p.Keywords)),
		}
		for _, k := range p.Keywords {
			v.Keywords = append(v.Keywords, k.Term)
		}
		views = append(views, v)
	}
	respond.Data(c, http.StatusOK, gin.H{
		"version":    catalog.Version,
		"default":    catalog.Default,
		"industries": views,
	})
}

func (h *Handler) run(c *gin.Context, req Request) {
	rep, err := h.Svc.Analyze(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.Data(c, http.StatusOK, rep)
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, code, message := Classify(err)
	respond.Error(c, status, code, message, nil)
}

func (h *Handler) maxBytes() int64 {
	if h.MaxUploadBytes > 0 {
		return h.MaxUploadBytes
	}
	return 5 << 20
}

func (h *Handler) allowed(name string) bool {
	if len(h.AllowedExtensions) == 0 {
		return true
	}
	ext := util.Extension(name)
	for _, a := range h.AllowedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		if isTooLarge(err) {
			return nil, ErrDocumentTooLarge
		}
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrDocumentTooLarge, limit)
	}
	return data, nil
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large")
}

func isTrue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
