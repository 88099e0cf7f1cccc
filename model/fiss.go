package model

import "encoding/xml"

// FISSDocument is the XML file written by the FISS Papyrus extension. Entries
// are siblings named by a 1 based suffix: date1, entry1, date2, entry2...
type FISSDocument struct {
	XMLName xml.Name  `xml:"fiss"`
	Data    *FISSData `xml:"Data"`
}

type FISSData struct {
	NumberOfEntries *string    `xml:"NumberOfEntries"`
	Nodes           []FISSNode `xml:",any"`
}

type FISSNode struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}
