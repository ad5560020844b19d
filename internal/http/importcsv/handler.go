package importcsv

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/khusela/internal/application"
	"github.com/MrJamesThe3rd/khusela/internal/importer"
	"github.com/MrJamesThe3rd/khusela/internal/importer/statement"
	"github.com/MrJamesThe3rd/khusela/internal/http/respond"
)

const maxStatementBytes = 5 << 20

// Handler parses uploaded creditor statements. Nothing is stored: the client
// reviews the rows and sends them back with the application.
type Handler struct {
	imports *importer.Service
}

func NewHandler(imports *importer.Service) *Handler {
	return &Handler{imports: imports}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/creditors", h.importCreditors)
}

type creditorResponse struct {
	CreditorName  string              `json:"creditor_name"`
	AccountNumRef string              `json:"account_num_ref"`
	BalanceOfAcc  decimal.NullDecimal `json:"balance_of_acc"`
	Amount        decimal.NullDecimal `json:"amount"`
}

type importResponse struct {
	Creditors []creditorResponse `json:"creditors"`
	Count     int                `json:"count"`
}

func (h *Handler) importCreditors(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxStatementBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, http.StatusRequestEntityTooLarge, "File is too large.")
			return
		}

		respond.Error(w, http.StatusBadRequest, "No file provided.")

		return
	}
	defer file.Close()

	creditors, err := h.imports.Import(importer.Format(r.FormValue("format")), file)
	if err != nil {
		if errors.Is(err, importer.ErrUnknownFormat) {
			respond.Error(w, http.StatusBadRequest, "Unsupported import format.")
			return
		}

		if errors.Is(err, statement.ErrNoHeader) {
			respond.Error(w, http.StatusBadRequest, "No creditor columns found in the statement.")
			return
		}

		respond.Error(w, http.StatusBadRequest, "Could not read statement: "+err.Error())

		return
	}

	respond.JSON(w, http.StatusOK, toImportResponse(creditors))
}

func toImportResponse(creditors []application.Creditor) importResponse {
	out := importResponse{
		Creditors: make([]creditorResponse, 0, len(creditors)),
		Count:     len(creditors),
	}

	for _, c := range creditors {
		out.Creditors = append(out.Creditors, creditorResponse{
			CreditorName:  c.Name,
			AccountNumRef: c.AccountRef,
			BalanceOfAcc:  c.Balance,
			Amount:        c.Amount,
		})
	}

	return out
}
