package csv_test

import (
	"bytes"
	stdcsv "encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csvsnapshot/internal/parser"
	pcsv "csvsnapshot/internal/parser/csv"
)

const passengers = `PassengerId,Survived,Name,Age,Ticket,Fare,Cabin,Embarked
1,0,"Braund, Mr. Owen Harris",22,A/5 21171,7.25,,S
2,1,"Cumings, Mrs. John Bradley",38,PC 17599,71.2833,C85,C
3,1,"Heikkinen, Miss. Laina",,STON/O2. 3101282,7.925,,S
`

func TestParse_TypesAndMissing(t *testing.T) {
	ds, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader(passengers))
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"PassengerId", "Survived", "Name", "Age", "Ticket", "Fare", "Cabin", "Embarked"},
		ds.Columns)
	require.Equal(t, 3, ds.Len())

	assert.Equal(t, []any{int64(1), int64(0), "Braund, Mr. Owen Harris", int64(22), "A/5 21171", 7.25, nil, "S"}, ds.Rows[0])
	assert.Nil(t, ds.Rows[2][3], "empty Age is missing")
	assert.Equal(t, "C85", ds.Rows[1][6])
}

func TestParse_Emptiness(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"no_header", "", parser.ErrNoHeader},
		{"blank_lines_only", "\n\n\n", parser.ErrNoHeader},
		{"header_only", "PassengerId,Age,Embarked\n", parser.ErrNoRows},
		{"header_only_no_newline", "PassengerId,Age,Embarked", parser.ErrNoRows},
		{"header_then_whitespace_line", "PassengerId,Age,Embarked\n   \n", parser.ErrNoRows},
		{"header_then_tabs", "PassengerId,Age,Embarked\n\t\n \t \n", parser.ErrNoRows},
		{"whitespace_only", "   \n  \n", parser.ErrNoHeader},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ds, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader(c.in))
			require.ErrorIs(t, err, c.want)
			assert.Nil(t, ds)
		})
	}
}

func TestParse_Structure(t *testing.T) {
	t.Run("whitespace_lines_skipped", func(t *testing.T) {
		ds, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader("  \na,b\n   \n1,2\n\t\n3,4\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ds.Columns)
		assert.Equal(t, 2, ds.Len())
	})

	t.Run("empty_fields_row_is_kept", func(t *testing.T) {
		ds, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader("a,b\n,\n1,2\n"))
		require.NoError(t, err)
		require.Equal(t, 2, ds.Len())
		assert.Equal(t, []any{nil, nil}, ds.Rows[0])
	})

	t.Run("wide_row_fails", func(t *testing.T) {
		_, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader("a,b\n1,2\n1,2,3\n"))
		require.ErrorIs(t, err, pcsv.ErrMalformed)
		assert.Contains(t, err.Error(), "expected 2 fields in line 3, saw 3")
	})

	t.Run("short_row_is_padded", func(t *testing.T) {
		ds, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader("a,b,c\n1\n"))
		require.NoError(t, err)
		assert.Equal(t, []any{int64(1), nil, nil}, ds.Rows[0])
	})

	t.Run("unterminated_quote_fails", func(t *testing.T) {
		_, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader("a,b\n\"x,1\n"))
		var pe *stdcsv.ParseError
		require.ErrorAs(t, err, &pe)
	})

	t.Run("bom_is_stripped", func(t *testing.T) {
		ds, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader("\ufeff\"Age\",Embarked\n22,S\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Age", "Embarked"}, ds.Columns)
	})

	t.Run("headers_are_kept_verbatim_and_deduplicated", func(t *testing.T) {
		ds, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader(" Age ,a,a,,a.1,a\n1,2,3,4,5,6\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{" Age ", "a", "a.1", "Unnamed: 3", "a.1.1", "a.2"}, ds.Columns)
	})
}

func TestParse_Inference(t *testing.T) {
	in := "i,f,b,s,mixed,na,spaced\n" +
		"1,1,True,x,1,NA, 7\n" +
		"2,2.5,false,y,yes,,8 \n"
	ds, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []any{int64(1), 1.0, true, "x", "1", nil, int64(7)}, ds.Rows[0])
	assert.Equal(t, []any{int64(2), 2.5, false, "y", "yes", nil, int64(8)}, ds.Rows[1])
}

func TestParse_Options(t *testing.T) {
	t.Run("raw_strings", func(t *testing.T) {
		ds, err := pcsv.NewParser(pcsv.Options{RawStrings: true}).Parse(strings.NewReader("a\n1\n"))
		require.NoError(t, err)
		assert.Equal(t, "1", ds.Rows[0][0])
	})

	t.Run("custom_na_without_defaults", func(t *testing.T) {
		opt := pcsv.Options{NoDefaultNA: true, NAValues: []string{"?"}}
		ds, err := pcsv.NewParser(opt).Parse(strings.NewReader("a,b\nNA,?\n"))
		require.NoError(t, err)
		assert.Equal(t, []any{"NA", nil}, ds.Rows[0])
	})

	t.Run("semicolon_and_trim", func(t *testing.T) {
		opt := pcsv.Options{Comma: ';', TrimSpace: true}
		ds, err := pcsv.NewParser(opt).Parse(strings.NewReader("a;b\n  x ; 3 \n"))
		require.NoError(t, err)
		assert.Equal(t, []any{"x", int64(3)}, ds.Rows[0])
	})
}

func TestParse_Encoding(t *testing.T) {
	latin1 := []byte("Name,Embarked\nJos\xe9,S\n")

	_, err := pcsv.NewParser(pcsv.Options{}).Parse(bytes.NewReader(latin1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid utf-8 in line 2")

	ds, err := pcsv.NewParser(pcsv.Options{Encoding: "latin-1"}).Parse(bytes.NewReader(latin1))
	require.NoError(t, err)
	assert.Equal(t, "José", ds.Rows[0][0])

	_, err = pcsv.NewParser(pcsv.Options{Encoding: "klingon"}).Parse(bytes.NewReader(latin1))
	require.Error(t, err)
}

func TestLookupEncoding(t *testing.T) {
	enc, err := pcsv.LookupEncoding("UTF-8")
	require.NoError(t, err)
	assert.Nil(t, enc)

	for _, name := range []string{"latin1", "windows-1250", "cp1252", "shift_jis"} {
		enc, err := pcsv.LookupEncoding(name)
		require.NoError(t, err, name)
		assert.NotNil(t, enc, name)
	}
}
