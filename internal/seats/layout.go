package seats

const RoadSeatCount = 14

var roadBooked = map[int]bool{1: true, 5: true, 6: true, 8: true, 9: true}

// RoadLayout is the fixed 14-seater map used until the API exposes live
// seat maps. Seat 0 is the driver.
func RoadLayout() []Seat {
	layout := make([]Seat, 0, RoadSeatCount+1)
	layout = append(layout, Seat{Number: DriverSeat, Status: StatusDriver})
	for n := 1; n <= RoadSeatCount; n++ {
		status := StatusAvailable
		if roadBooked[n] {
			status = StatusBooked
		}
		layout = append(layout, Seat{Number: n, Status: status})
	}
	return layout
}
