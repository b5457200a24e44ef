package clubes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/4lexxe/backend-FJV/internal/domain/clubes"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type storeMemoria struct {
	club       *clubes.Club
	asociados  asociacionesClub
	eliminados int
}

func (s *storeMemoria) ClubPorID(id string) (*clubes.Club, error) {
	if s.club == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.club, nil
}

func (s *storeMemoria) AsociadosDeClub(idClub uint) (asociacionesClub, error) {
	return s.asociados, nil
}

func (s *storeMemoria) EliminarClub(club *clubes.Club) error {
	s.eliminados++
	return nil
}

func servidorClubes(store bajaStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &Handler{store: store}
	r.DELETE("/api/clubs/:id", h.DeleteClub)
	return r
}

func borrarClub(t *testing.T, r *gin.Engine, id string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, "/api/clubs/"+id, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var cuerpo map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &cuerpo); err != nil {
		t.Fatalf("respuesta no es JSON: %v", err)
	}
	return w, cuerpo
}

func TestDeleteClubConAsociados(t *testing.T) {
	casos := []struct {
		nombre    string
		asociados asociacionesClub
		msg       string
	}{
		{"personas", asociacionesClub{Personas: 3}, "No se puede eliminar el club porque tiene personas afiliadas."},
		{"equipos", asociacionesClub{Equipos: 1}, "No se puede eliminar el club porque tiene equipos registrados."},
		{"cobros", asociacionesClub{Cobros: 2}, "No se puede eliminar el club porque tiene cobros asociados."},
	}
	for _, caso := range casos {
		t.Run(caso.nombre, func(t *testing.T) {
			store := &storeMemoria{
				club:      &clubes.Club{IDClub: 7, Nombre: "Club Belgrano"},
				asociados: caso.asociados,
			}
			w, cuerpo := borrarClub(t, servidorClubes(store), "7")

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, se esperaba 400", w.Code)
			}
			if cuerpo["msg"] != caso.msg {
				t.Errorf("msg = %q, se esperaba %q", cuerpo["msg"], caso.msg)
			}
			if store.eliminados != 0 {
				t.Errorf("se eliminó el club pese a tener asociados")
			}
		})
	}
}

func TestDeleteClubSinAsociados(t *testing.T) {
	store := &storeMemoria{club: &clubes.Club{IDClub: 7, Nombre: "Club Belgrano"}}
	w, cuerpo := borrarClub(t, servidorClubes(store), "7")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, se esperaba 200", w.Code)
	}
	if cuerpo["status"] != "1" {
		t.Errorf("status del cuerpo = %q", cuerpo["status"])
	}
	if store.eliminados != 1 {
		t.Errorf("eliminados = %d, se esperaba 1", store.eliminados)
	}
}

func TestDeleteClubInexistente(t *testing.T) {
	store := &storeMemoria{}
	w, _ := borrarClub(t, servidorClubes(store), "99")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, se esperaba 404", w.Code)
	}
	if store.eliminados != 0 {
		t.Errorf("se eliminó un club inexistente")
	}
}
