package imgbb

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const uploadEndpoint = "https://api.imgbb.com/1/upload"

var ErrAPIKeyFaltante = errors.New("IMGBB_API_KEY no configurada")

// Imagen es el resultado de una subida: las URLs públicas y el handle de
// borrado que ImgBB devuelve por imagen.
type Imagen struct {
	URL       string
	ThumbURL  string
	DeleteURL string
	Tipo      string
	Tamano    int64
}

// Client habla con la API de hosting de imágenes de ImgBB. No existe SDK en
// Go, así que es un cliente HTTP plano con timeout acotado.
type Client struct {
	apiKey string
	hc     *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		hc:     &http.Client{Timeout: 15 * time.Second},
	}
}

type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL       string `json:"url"`
		DeleteURL string `json:"delete_url"`
		Size      int64  `json:"size"`
		Image     struct {
			Mime string `json:"mime"`
		} `json:"image"`
		Thumb struct {
			URL string `json:"url"`
		} `json:"thumb"`
	} `json:"data"`
}

// Subir carga una imagen y devuelve sus URLs. El contenido viaja en base64
// como exige la API.
func (c *Client) Subir(ctx context.Context, contenido []byte, nombre string) (*Imagen, error) {
	if c.apiKey == "" {
		return nil, ErrAPIKeyFaltante
	}

	form := url.Values{}
	form.Set("key", c.apiKey)
	form.Set("image", base64.StdEncoding.EncodeToString(contenido))
	form.Set("name", nombre)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("subiendo imagen a ImgBB: %w", err)
	}
	defer resp.Body.Close()

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("respuesta de ImgBB ilegible: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !out.Success {
		return nil, fmt.Errorf("ImgBB rechazó la subida (HTTP %d)", resp.StatusCode)
	}

	return &Imagen{
		URL:       out.Data.URL,
		ThumbURL:  out.Data.Thumb.URL,
		DeleteURL: out.Data.DeleteURL,
		Tipo:      out.Data.Image.Mime,
		Tamano:    out.Data.Size,
	}, nil
}

// Eliminar pide la baja de una imagen. ImgBB no expone una API formal de
// borrado: el delete_url es una página web, alcanza con visitarla.
func (c *Client) Eliminar(ctx context.Context, deleteURL string) error {
	if deleteURL == "" {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, deleteURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("eliminando imagen de ImgBB: %w", err)
	}
	resp.Body.Close()
	return nil
}
