package main

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestParseMoney(t *testing.T) {
	cases := map[string]string{
		"25000":    "25000",
		"$25.000":  "25000",
		"1.250,50": "1250.5",
		"99.5":     "99.5",
		" 0 ":      "0",
	}
	for in, want := range cases {
		got, err := parseMoney(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "%s => %s", in, got)
	}
	_, err := parseMoney("abc")
	assert.Error(t, err)
}

func TestProductFromRecord_Latin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("Audífonos;Acme;audio;770123;18.000;25.000;4\n"))
	require.NoError(t, err)

	cr := csv.NewReader(transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()))
	cr.Comma = ';'
	rec, err := cr.Read()
	require.NoError(t, err)

	req, err := productFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, "Audífonos", req.Name)
	assert.Equal(t, "770123", req.Barcode)
	assert.True(t, req.SellingPrice.Equal(decimal.NewFromInt(25000)))
	assert.Equal(t, 4, req.InitialQuantity)
}
