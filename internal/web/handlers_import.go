package web

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/JonMunkholm/pm3import/internal/core"
)

// multipartMemory is the part of an import form kept in memory; larger
// uploads spill to temporary files.
const multipartMemory = 8 << 20

// handleImport runs one import from a multipart form carrying the clubs
// and players tables.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxUploadSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if !errors.As(err, &maxBytes) {
			err = fmt.Errorf("%w: invalid form: %v", errBadRequest, err)
		}
		s.respondError(w, r, err, 0)
		return
	}
	defer r.MultipartForm.RemoveAll()

	req, err := s.parseRunRequest(r)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	clubs, err := openPart(r, "clubs")
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	defer clubs.Close()
	players, err := openPart(r, "players")
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	defer players.Close()
	req.Clubs = clubs
	req.Players = players

	ctx := WithRequestMetadata(r.Context(), r)
	result, err := s.service.Run(ctx, req)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	writeJSON(w, result)
}

// parseRunRequest reads the import options of the form. Unset options
// fall back to the service configuration.
func (s *Server) parseRunRequest(r *http.Request) (core.RunRequest, error) {
	defaults := s.service.Config()
	req := core.RunRequest{Source: "api"}

	var err error
	if req.Target, err = parseTarget(r); err != nil {
		return req, err
	}
	if req.Year, err = formInt(r, "year"); err != nil {
		return req, err
	}
	if req.MaxPlayers, err = formInt(r, "max_players"); err != nil {
		return req, err
	}
	if req.ImportLoans, err = formBool(r, "import_loans", defaults.ImportLoans); err != nil {
		return req, err
	}
	if req.Backup, err = formBool(r, "backup", defaults.Backup); err != nil {
		return req, err
	}
	return req, nil
}

func openPart(r *http.Request, name string) (multipart.File, error) {
	file, _, err := r.FormFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w (missing %q)", core.ErrMissingTable, name)
	}
	return file, nil
}
