package middleware

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/4lexxe/backend-FJV/internal/infra/imgbb"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ImagenKey es la clave de contexto donde queda la imagen ya subida al host.
const ImagenKey = "imagen"

const maxFotoBytes = 4 << 20 // 4MB, límite del plan gratuito de ImgBB

var tiposPermitidos = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ProcesarFotoPerfil lee el archivo multipart "foto", valida tipo y tamaño,
// lo sube al host de imágenes y deja el resultado en el contexto. Si la
// request no trae archivo sigue de largo: la foto es opcional.
func ProcesarFotoPerfil(host *imgbb.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.ContentType(), "multipart/form-data") {
			c.Next()
			return
		}

		fileHeader, err := c.FormFile("foto")
		if err != nil {
			c.Next()
			return
		}

		if fileHeader.Size > maxFotoBytes {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"status": "0",
				"msg":    "La imagen supera el tamaño máximo de 4MB",
			})
			return
		}

		tipo := fileHeader.Header.Get("Content-Type")
		if !tiposPermitidos[tipo] {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"status": "0",
				"msg":    fmt.Sprintf("Tipo de imagen no permitido: %s", tipo),
			})
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "No se pudo leer el archivo"})
			return
		}
		defer f.Close()

		contenido, err := io.ReadAll(f)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "No se pudo leer el archivo"})
			return
		}

		imagen, err := host.Subir(c.Request.Context(), contenido, "perfil_"+uuid.NewString())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
				"status": "0",
				"msg":    "No se pudo subir la imagen al servicio de hosting",
			})
			return
		}

		c.Set(ImagenKey, imagen)
		c.Next()
	}
}
