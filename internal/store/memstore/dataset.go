package memstore

import (
	"fmt"
	"time"

	"libraryapi/internal/book"
	"libraryapi/internal/library"
	"libraryapi/internal/platform/textnorm"
	"libraryapi/internal/user"
	"libraryapi/internal/wishlist"
)

// Dataset is a consistent set of rows for every table.
type Dataset struct {
	Books    []book.Book
	Users    []user.Profile
	Library  []library.Entry
	Wishlist []wishlist.Entry
}

// DemoDataset returns the demo catalog: 40 books "Libro 0".."Libro 39",
// four users of which userId3 is hidden, 25 library entries for userId0 and
// 12 for userId1, and wishlists holding the rest of the first books.
func DemoDataset() Dataset {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var ds Dataset
	for i := range 40 {
		title := fmt.Sprintf("Libro %d", i)
		ds.Books = append(ds.Books, book.Book{
			ID:              fmt.Sprintf("BookId%d", i),
			ISBN:            fmt.Sprintf("97888000000%02d", i),
			Title:           title,
			NormalizedTitle: textnorm.Normalize(title),
			Author:          fmt.Sprintf("Autore %d", i%7),
			Description:     fmt.Sprintf("Descrizione del libro %d", i),
			CreatedAt:       created,
		})
	}

	for i, name := range []string{"Cosimo de Medici", "Maria Callas", "Sofonisba Anguissola", "Ennio Morricone"} {
		ds.Users = append(ds.Users, user.Profile{
			ID:                 fmt.Sprintf("userId%d", i),
			FullName:           name,
			NormalizedFullName: textnorm.Normalize(name),
			Visible:            i != 3,
		})
	}

	shelves := []struct {
		userID          string
		owned, wishedTo int
	}{
		{"userId0", 25, 40},
		{"userId1", 12, 23},
	}
	for _, sh := range shelves {
		for i := range sh.owned {
			ds.Library = append(ds.Library, demoEntry(sh.userID, ds.Books[i].ID, i, created))
		}
		for i := sh.owned; i < sh.wishedTo; i++ {
			ds.Wishlist = append(ds.Wishlist, wishlist.NewEntry(sh.userID, ds.Books[i], created))
		}
	}
	return ds
}

func demoEntry(userID, bookID string, i int, start time.Time) library.Entry {
	e := library.NewEntry(userID, bookID)
	e.Rating = float64(i % 5)
	e.Tag = library.Tag(fmt.Sprint(i % 4))
	e.ReadingState = library.ReadingState(fmt.Sprint(i % 4))
	if e.ReadingState != library.StateNotRead {
		e.InitialDate = start.AddDate(0, 0, i)
	}
	if e.ReadingState == library.StateRead {
		e.FinalDate = start.AddDate(0, 0, i+10)
	}
	return e
}
