package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func routerConSanitizado(capturado *map[string]any) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SanitizeJSONMiddleware())
	r.POST("/echo", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		_ = json.Unmarshal(body, capturado)
		c.Status(http.StatusOK)
	})
	return r
}

func TestSanitizeJSONRemueveHTML(t *testing.T) {
	var capturado map[string]any
	r := routerConSanitizado(&capturado)

	body := `{"titulo":"<script>alert(1)</script>Torneo","anidado":{"texto":"<b>hola</b>"},"lista":["<i>a</i>","b"],"numero":5}`
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if capturado["titulo"] != "Torneo" {
		t.Errorf("titulo = %q, el script debe desaparecer", capturado["titulo"])
	}
	anidado := capturado["anidado"].(map[string]any)
	if anidado["texto"] != "hola" {
		t.Errorf("texto anidado = %q", anidado["texto"])
	}
	lista := capturado["lista"].([]any)
	if lista[0] != "a" {
		t.Errorf("lista[0] = %q", lista[0])
	}
	if capturado["numero"].(float64) != 5 {
		t.Errorf("los valores no string no deben tocarse")
	}
}

func TestSanitizeJSONIgnoraGET(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SanitizeJSONMiddleware())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestSanitizeJSONRechazaJSONInvalido(t *testing.T) {
	var capturado map[string]any
	r := routerConSanitizado(&capturado)

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{no es json`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperaba 400", w.Code)
	}
}

func TestSanitizeJSONIgnoraMultipart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SanitizeJSONMiddleware())
	r.POST("/upload", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("--x--"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
