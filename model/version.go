package model

import "fmt"

// Current is the version written into every book, settings and variables file.
var Current = Version{
	Major:     1,
	Minor:     3,
	Patch:     0,
	Timestamp: "2019-06-02T18:21:05.116843+00:00",
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compatible reports whether a file written with major version major can be read.
func (v Version) Compatible(major int) bool {
	return v.Major == major
}
