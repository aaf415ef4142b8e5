package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalogfeed/internal/app"
	"catalogfeed/pipeline"
)

// maxUploadSize предел размера сырой выгрузки (32 МБ)
const maxUploadSize = 32 << 20

// handleHealth проверка живости сервиса
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleConvert принимает сырую выгрузку (multipart поле "file"),
// прогоняет конвейер и возвращает фид со сводкой. Параметры:
// dry_run=1 — без внешнего сервиса нормализации, limit=N — только
// первые N строк.
func (s *Server) handleConvert(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field: " + err.Error()})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open upload: " + err.Error()})
		return
	}
	defer file.Close()

	rawData, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload: " + err.Error()})
		return
	}

	dryRun := c.Query("dry_run") == "1"
	limit, _ := strconv.Atoi(c.Query("limit"))

	deps, err := app.BuildDeps(s.cfg, dryRun)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	p := pipeline.New(deps, pipeline.Options{
		StockLowMax: s.cfg.StockLowMax,
		Limit:       limit,
	})
	result, err := p.Run(c.Request.Context(), rawData)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if s.db != nil {
		if err := s.db.SaveRun(result); err != nil {
			// История — вторичная забота, фид уже готов
			c.Header("X-Run-Persist-Error", err.Error())
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":            result.RunID,
		"exchange_rate":     result.ExchangeRate,
		"total_lines":       result.TotalLines,
		"output_count":      len(result.Records),
		"skipped":           result.Skipped,
		"error_count":       len(result.ParseErrors),
		"unknown_suppliers": result.UnknownSuppliers,
		"records":           result.Records,
		"parse_errors":      result.ParseErrors,
	})
}

// handleRuns возвращает историю запусков из БД
func (s *Server) handleRuns(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run history is not enabled"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	runs, err := s.db.ListRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}
