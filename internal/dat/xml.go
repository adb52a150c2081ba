package dat

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Parser reads Logiqx-dialect DAT files.
type Parser struct{}

// NewParser builds a fresh Logiqx DAT parser.
func NewParser() Parser {
	return Parser{}
}

// ParseFile opens and parses a DAT file from disk.
func (p Parser) ParseFile(path string) (*Dat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dat %s: %w", path, err)
	}
	defer f.Close()
	return p.Parse(f)
}

// Parse consumes Logiqx DAT XML content from the provided reader.
func (p Parser) Parse(r io.Reader) (*Dat, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false // Logiqx DATs reference a public DTD; relax strict parsing.

	var doc datafileXML
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode dat: %w", err)
	}

	return &Dat{
		Header: doc.Header,
		Games:  doc.Games,
	}, nil
}

// datafileXML mirrors the Logiqx <datafile> root element. It is kept
// separate from Dat/Game/Rom so those model types stay free of the root
// wrapper while still sharing field tags with the wire format.
type datafileXML struct {
	XMLName xml.Name `xml:"datafile"`
	Header  Header   `xml:"header"`
	Games   []Game   `xml:"game"`
}

// Write serialises the dat in the Logiqx dialect to w.
func Write(d *Dat, w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write dat header: %w", err)
	}
	if _, err := io.WriteString(w, datDoctype); err != nil {
		return fmt.Errorf("write dat doctype: %w", err)
	}

	doc := datafileXML{Header: d.Header, Games: d.Games}

	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode dat: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write dat trailer: %w", err)
	}
	return nil
}

// WriteFile serialises the dat to the given path. The parent directory
// must already exist.
func WriteFile(d *Dat, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dat file %s: %w", path, err)
	}
	defer f.Close()
	return Write(d, f)
}

const datDoctype = `<!DOCTYPE datafile PUBLIC "-//Logiqx//DTD ROM Management Datafile//EN" "http://www.logiqx.com/Dats/datafile.dtd">
`
