package galerias

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/4lexxe/backend-FJV/internal/domain/galerias"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxImagenBytes = 8 << 20

var tiposPermitidos = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// POST /api/galerias/:id/imagenes
//
// Sube una o más imágenes (campo multipart "imagenes") al host y las agrega
// al final de la galería. Si una subida falla, las anteriores quedan.
func (h *Handler) SubirImagenes(c *gin.Context) {
	var galeria galerias.Galeria
	if err := h.DB.First(&galeria, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Galería no encontrada."})
			return
		}
		errorBD(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Se esperaba un formulario multipart con imágenes."})
		return
	}
	archivos := form.File["imagenes"]
	if len(archivos) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "No se recibió ninguna imagen."})
		return
	}

	var ultimoOrden int
	h.DB.Model(&galerias.Imagen{}).
		Where("id_galeria = ?", galeria.IDGaleria).
		Select("COALESCE(MAX(orden), 0)").
		Scan(&ultimoOrden)

	var subidas []galerias.Imagen
	for _, archivo := range archivos {
		if archivo.Size > maxImagenBytes {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": fmt.Sprintf("La imagen %q supera el tamaño máximo de 8MB.", archivo.Filename)})
			return
		}
		tipo := archivo.Header.Get("Content-Type")
		if !tiposPermitidos[tipo] {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": fmt.Sprintf("La imagen %q tiene un formato no permitido. Use JPEG, PNG o WebP.", archivo.Filename)})
			return
		}

		f, err := archivo.Open()
		if err != nil {
			errorBD(c, err)
			return
		}
		contenido, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			errorBD(c, err)
			return
		}

		resultado, err := h.Imagenes.Subir(c.Request.Context(), contenido, "galeria_"+uuid.NewString())
		if err != nil {
			log.Printf("[galerias] error subiendo imagen al host: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"status": "0", "msg": "No se pudo subir la imagen al servicio de hosting."})
			return
		}

		ultimoOrden++
		titulo := archivo.Filename
		imagen := galerias.Imagen{
			Titulo:    &titulo,
			URL:       resultado.URL,
			ThumbURL:  &resultado.ThumbURL,
			DeleteURL: &resultado.DeleteURL,
			Orden:     ultimoOrden,
			Tipo:      &resultado.Tipo,
			Tamano:    &resultado.Tamano,
			IDGaleria: galeria.IDGaleria,
		}
		if err := h.DB.Create(&imagen).Error; err != nil {
			errorBD(c, err)
			return
		}
		subidas = append(subidas, imagen)
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   "1",
		"msg":      fmt.Sprintf("Se subieron %d imágenes exitosamente.", len(subidas)),
		"imagenes": subidas,
	})
}

// DELETE /api/galerias/:id/imagenes/:idImagen
func (h *Handler) DeleteImagen(c *gin.Context) {
	var imagen galerias.Imagen
	if err := h.DB.
		Where("id_galeria = ?", c.Param("id")).
		First(&imagen, c.Param("idImagen")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Imagen no encontrada en la galería."})
			return
		}
		errorBD(c, err)
		return
	}

	if err := h.DB.Delete(&imagen).Error; err != nil {
		errorBD(c, err)
		return
	}

	if imagen.DeleteURL != nil {
		if err := h.Imagenes.Eliminar(c.Request.Context(), *imagen.DeleteURL); err != nil {
			log.Printf("[galerias] no se pudo eliminar la imagen %d del host: %v", imagen.IDImagen, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Imagen eliminada exitosamente."})
}

type ordenInput struct {
	Imagenes []uint `json:"imagenes" binding:"required,min=1"`
}

// PUT /api/galerias/:id/imagenes/orden
//
// Reordena toda la galería en una transacción: la posición en la lista pasa
// a ser el orden de cada imagen.
func (h *Handler) ReordenarImagenes(c *gin.Context) {
	var galeria galerias.Galeria
	if err := h.DB.First(&galeria, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Galería no encontrada."})
			return
		}
		errorBD(c, err)
		return
	}

	var input ordenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Se esperaba la lista de IDs de imágenes en el nuevo orden."})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		for posicion, idImagen := range input.Imagenes {
			res := tx.Model(&galerias.Imagen{}).
				Where("id_imagen = ? AND id_galeria = ?", idImagen, galeria.IDGaleria).
				Update("orden", posicion+1)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("la imagen %d no pertenece a la galería", idImagen)
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "No se pudo reordenar: alguna imagen no pertenece a la galería."})
		return
	}

	var actualizada galerias.Galeria
	if err := h.conImagenes().First(&actualizada, galeria.IDGaleria).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Imágenes reordenadas exitosamente.", "galeria": actualizada})
}

type portadaInput struct {
	IDImagen uint `json:"idImagen" binding:"required"`
}

// PUT /api/galerias/:id/portada
func (h *Handler) SetPortada(c *gin.Context) {
	var galeria galerias.Galeria
	if err := h.DB.First(&galeria, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Galería no encontrada."})
			return
		}
		errorBD(c, err)
		return
	}

	var input portadaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El ID de la imagen de portada es obligatorio."})
		return
	}

	var imagen galerias.Imagen
	if err := h.DB.
		Where("id_galeria = ?", galeria.IDGaleria).
		First(&imagen, input.IDImagen).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "La imagen indicada no pertenece a la galería."})
		return
	}

	if err := h.DB.Model(&galeria).Update("portada", imagen.URL).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Portada actualizada exitosamente.", "portada": imagen.URL})
}
