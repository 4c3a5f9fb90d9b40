// Package storage implementa la persistencia local del documento: un único
// blob JSON bajo un nombre fijo, análogo al almacenamiento local de un
// navegador. Sin transacciones, sin reintentos, sin coordinación entre
// procesos: dos procesos sobre el mismo archivo compiten en la escritura
// (limitación conocida y aceptada para una herramienta monousuario).
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/jhoicas/facturador-api/internal/application/docstore"
	"github.com/jhoicas/facturador-api/pkg/logger"
)

// storageFileName clave fija de almacenamiento; cambiar el esquema exige
// reset manual (no hay versionado ni migración).
const storageFileName = "document-store.json"

// FileStore persistencia best-effort sobre un afero.Fs (el Fs en memoria
// sirve para tests).
type FileStore struct {
	fs   afero.Fs
	path string
	log  *logger.Logger
}

// NewFileStore construye el store sobre dir; crea el directorio si falta.
func NewFileStore(fs afero.Fs, dir string, log *logger.Logger) *FileStore {
	if err := fs.MkdirAll(dir, 0o755); err != nil && log != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("no se pudo crear el directorio de almacenamiento")
	}
	return &FileStore{fs: fs, path: filepath.Join(dir, storageFileName), log: log}
}

// Save escribe el blob completo de una vez (síncrono en cada mutación).
func (s *FileStore) Save(ps *docstore.PersistedState) error {
	data, err := json.MarshalIndent(ps, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(s.fs, s.path, data, 0o644)
}

// Load lee el blob persistido. Archivo ausente o corrupto degrada a nil
// (estado por defecto) en lugar de fallar: el almacenamiento es consultivo.
func (s *FileStore) Load() *docstore.PersistedState {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if !os.IsNotExist(err) && s.log != nil {
			s.log.Warn().Err(err).Str("path", s.path).Msg("lectura de almacenamiento falló; se usan defaults")
		}
		return nil
	}
	var ps docstore.PersistedState
	if err := json.Unmarshal(data, &ps); err != nil {
		if s.log != nil {
			s.log.Warn().Err(err).Str("path", s.path).Msg("blob persistido corrupto; se usan defaults")
		}
		return nil
	}
	return &ps
}
