// Package export flattens ride records to CSV for download.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/teetime/campusride/internal/domain/ride"
)

// Header is the exact column contract consumers of exported files rely on.
var Header = []string{
	"ID", "Passenger ID", "Driver ID", "Car ID",
	"Origin", "Destination", "Time", "Seats Needed", "Status", "Price",
}

// WriteRides writes one header row and one row per ride. Unassigned driver and
// car ids render as empty cells, times as RFC 3339 UTC, prices with two
// decimals. Fields containing delimiters are quoted per RFC 4180.
func WriteRides(w io.Writer, rides []ride.Ride) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return err
	}

	for _, rd := range rides {
		if err := cw.Write(rideRow(rd)); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

func rideRow(rd ride.Ride) []string {
	return []string{
		strconv.FormatInt(rd.ID, 10),
		strconv.FormatInt(rd.PassengerID, 10),
		optionalID(rd.DriverID),
		optionalID(rd.CarID),
		rd.Origin,
		rd.Destination,
		rd.Time.UTC().Format(time.RFC3339),
		strconv.Itoa(rd.SeatsNeeded),
		string(rd.Status),
		strconv.FormatFloat(rd.PriceEstimate, 'f', 2, 64),
	}
}

func optionalID(id *int64) string {
	if id == nil {
		return ""
	}

	return strconv.FormatInt(*id, 10)
}
