package clubes

import (
	"github.com/4lexxe/backend-FJV/internal/domain/clubes"
	"github.com/4lexxe/backend-FJV/internal/domain/cobros"
	"github.com/4lexxe/backend-FJV/internal/domain/equipos"
	"github.com/4lexxe/backend-FJV/internal/domain/personas"

	"gorm.io/gorm"
)

// asociacionesClub resume cuántos registros federativos dependen de un club.
type asociacionesClub struct {
	Personas int64
	Equipos  int64
	Cobros   int64
}

// bajaStore aísla los accesos a datos de la baja de un club.
type bajaStore interface {
	ClubPorID(id string) (*clubes.Club, error)
	AsociadosDeClub(idClub uint) (asociacionesClub, error)
	EliminarClub(club *clubes.Club) error
}

type gormBajaStore struct {
	db *gorm.DB
}

func (s *gormBajaStore) ClubPorID(id string) (*clubes.Club, error) {
	var club clubes.Club
	if err := s.db.First(&club, id).Error; err != nil {
		return nil, err
	}
	return &club, nil
}

func (s *gormBajaStore) AsociadosDeClub(idClub uint) (asociacionesClub, error) {
	var a asociacionesClub
	conteos := []struct {
		modelo  any
		destino *int64
	}{
		{&personas.Persona{}, &a.Personas},
		{&equipos.Equipo{}, &a.Equipos},
		{&cobros.Cobro{}, &a.Cobros},
	}
	for _, c := range conteos {
		if err := s.db.Model(c.modelo).Where("id_club = ?", idClub).Count(c.destino).Error; err != nil {
			return a, err
		}
	}
	return a, nil
}

func (s *gormBajaStore) EliminarClub(club *clubes.Club) error {
	return s.db.Delete(club).Error
}
