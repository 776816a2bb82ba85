package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/erazemk/najdeno/internal/codec"
	"github.com/erazemk/najdeno/internal/store"
)

// TransferHandler serves collection export and import.
type TransferHandler struct {
	Store *store.Store
}

var contentTypes = map[codec.Format]string{
	codec.FormatCSV:    "text/csv",
	codec.FormatJSON:   "application/json",
	codec.FormatXML:    "application/xml",
	codec.FormatLITEMS: "text/plain",
}

// Export handles GET /api/export. The format query parameter selects the
// encoding; the response is an attachment named lost-items.<ext>.
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := codec.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "unknown export format")
		return
	}

	data, err := codec.Export(h.Store.Items(), format)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to export items")
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=lost-items.%s", format))
	io.WriteString(w, data)
}

// Import handles POST /api/import. The multipart file's extension selects
// the decoder; the parsed items merge into the collection with duplicates
// dropped. A file that fails to parse changes nothing.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close()

	format, err := codec.DetectFormat(header.Filename)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "unsupported file type")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	items, err := codec.Import(string(data), format)
	if err != nil {
		var parseErr *codec.ParseError
		if errors.As(err, &parseErr) {
			jsonError(w, http.StatusBadRequest, parseErr.Error())
			return
		}
		jsonError(w, http.StatusBadRequest, "failed to parse file")
		return
	}

	added := h.Store.ImportItems(r.Context(), items)
	jsonResponse(w, http.StatusOK, map[string]int{"imported": added})
}
