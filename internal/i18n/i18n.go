// Package i18n renders stored notifications into display text. Notifications
// carry structured fields only; the message is produced here at read time for
// whichever language the caller is currently using, so a language switch
// retroactively affects the whole notification list.
package i18n

import (
	"fmt"
	"strings"
	"time"

	"github.com/erazemk/najdeno/internal/model"
)

// Supported UI languages.
const (
	LangEnglish = "en"
	LangItalian = "it"
	LangFrench  = "fr"
	LangSpanish = "es"
	LangGerman  = "de"
)

// DefaultLanguage is used when no preference is stored and geolocation
// yields nothing usable.
const DefaultLanguage = LangEnglish

// Languages lists the supported language codes.
var Languages = []string{LangEnglish, LangItalian, LangFrench, LangSpanish, LangGerman}

// ValidLanguage reports whether code is a supported language.
func ValidLanguage(code string) bool {
	for _, l := range Languages {
		if l == code {
			return true
		}
	}
	return false
}

// Rendered is a notification with its display strings filled in.
type Rendered struct {
	ID       string    `json:"id"`
	ItemID   string    `json:"itemId"`
	Category string    `json:"category"`
	Title    string    `json:"title"`
	Details  string    `json:"details,omitempty"`
	Date     time.Time `json:"date"`
}

type bundle struct {
	itemDeleted        string
	itemDeletedDetails string
	itemStatusChanged  string
	itemFound          string
	itemLost           string
	foundLabel         string
	pendingLabel       string
	months             [12]string
	twelveHour         bool
}

var bundles = map[string]bundle{
	LangEnglish: {
		itemDeleted:        "Item Deleted",
		itemDeletedDetails: "An item titled '{title}' was deleted on {date}.",
		itemStatusChanged:  "An item titled '{title}' was changed to '{status}' on {date}.",
		itemFound:          "Item Retrieved",
		itemLost:           "Item in Custody",
		foundLabel:         "Found",
		pendingLabel:       "Pending",
		months:             [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		twelveHour:         true,
	},
	LangItalian: {
		itemDeleted:        "Oggetto Eliminato",
		itemDeletedDetails: "Un oggetto intitolato '{title}' è stato eliminato il {date}.",
		itemStatusChanged:  "Un oggetto intitolato '{title}' in categoria '{category}' è stato segnato come {status} il {date}.",
		itemFound:          "Oggetto Ritirato",
		itemLost:           "Oggetto In Custodia",
		foundLabel:         "Ritirati",
		pendingLabel:       "In Attesa",
		months:             [12]string{"Gennaio", "Febbraio", "Marzo", "Aprile", "Maggio", "Giugno", "Luglio", "Agosto", "Settembre", "Ottobre", "Novembre", "Dicembre"},
	},
	LangFrench: {
		itemDeleted:        "Objet Supprimé",
		itemDeletedDetails: "Un objet intitulé '{title}' a été supprimé le {date}.",
		itemStatusChanged:  "Un objet intitulé '{title}' dans la categorie '{category}' a été marqué comme {status} le {date}.",
		itemFound:          "Objet Trouvé",
		itemLost:           "Objet Perdu",
		foundLabel:         "Trouvés",
		pendingLabel:       "En Attente",
		months:             [12]string{"Janvier", "Février", "Mars", "Avril", "Mai", "Juin", "Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre"},
	},
	LangSpanish: {
		itemDeleted:        "Objeto Eliminado",
		itemDeletedDetails: "Un objeto titulado '{title}' fue eliminado el {date}.",
		itemStatusChanged:  "Un objeto titulado '{title}' en la categoria '{category}' fue marcado como {status} el {date}.",
		itemFound:          "Objeto Encontrado",
		itemLost:           "Objeto Perdido",
		foundLabel:         "Encontrados",
		pendingLabel:       "Pendientes",
		months:             [12]string{"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio", "Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"},
	},
	LangGerman: {
		itemDeleted:        "Gegenstand gelöscht",
		itemDeletedDetails: "Ein Gegenstand mit dem Titel '{title}' wurde am {date} gelöscht.",
		itemStatusChanged:  "Ein Gegenstand mit dem Titel '{title}' in der Kategorie '{category}' wurde am {date} als '{status}' markiert.",
		itemFound:          "Gegenstand gefunden",
		itemLost:           "Verlorene Gegenstand",
		foundLabel:         "Gefunden",
		pendingLabel:       "Ausstehend",
		months:             [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
	},
}

func bundleFor(lang string) bundle {
	if b, ok := bundles[lang]; ok {
		return b
	}
	return bundles[DefaultLanguage]
}

// Render produces the display form of one notification. An unsupported
// language falls back to English.
func Render(notif model.Notification, lang string) Rendered {
	b := bundleFor(lang)
	out := Rendered{
		ID:       notif.ID,
		ItemID:   notif.ItemID,
		Category: notif.Category,
		Date:     notif.Date,
	}

	switch notif.Category {
	case model.NotificationDeleted:
		out.Title = b.itemDeleted
		out.Details = strings.NewReplacer(
			"{title}", notif.ItemTitle,
			"{date}", b.formatDate(notif.Date),
		).Replace(b.itemDeletedDetails)
	case model.NotificationFound, model.NotificationNotFound:
		status := b.pendingLabel
		out.Title = b.itemLost
		if notif.Category == model.NotificationFound {
			status = b.foundLabel
			out.Title = b.itemFound
		}
		out.Details = strings.NewReplacer(
			"{title}", notif.ItemTitle,
			"{category}", notif.ItemCategory,
			"{status}", status,
			"{date}", b.formatDate(notif.Date),
		).Replace(b.itemStatusChanged)
	default:
		// A freshly logged item is announced by its own title.
		out.Title = notif.ItemTitle
	}
	return out
}

// RenderAll renders a notification list for one language.
func RenderAll(notifs []model.Notification, lang string) []Rendered {
	out := make([]Rendered, len(notifs))
	for i, notif := range notifs {
		out[i] = Render(notif, lang)
	}
	return out
}

// formatDate writes a medium date with time, month name localized:
// "Mar 14, 2026, 3:04 PM" in English, "14 März 2026, 15:04" in German.
func (b bundle) formatDate(t time.Time) string {
	month := b.months[t.Month()-1]
	if b.twelveHour {
		return fmt.Sprintf("%s %d, %d, %s", abbreviate(month), t.Day(), t.Year(), t.Format("3:04 PM"))
	}
	return fmt.Sprintf("%d %s %d, %s", t.Day(), month, t.Year(), t.Format("15:04"))
}

func abbreviate(month string) string {
	runes := []rune(month)
	if len(runes) <= 3 {
		return month
	}
	return string(runes[:3])
}
