package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"client_name", "client_name"},
		{"Client Name", "client_name"},
		{"  CLIENT-NAME  ", "client_name"},
		{"Téléphone", "telephone"},
		{"Adresse E-mail", "adresse_e_mail"},
		{"date.de.début", "date_de_debut"},
		{"Échéance", "echeance"},
		{"__nom__", "nom"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}
