package dto

type StatisticsResponse struct {
	TotalRooms       int     `json:"total_rooms"`
	AvailableRooms   int     `json:"available_rooms"`
	OccupancyRate    float64 `json:"occupancy_rate"`
	ActiveBookings   int     `json:"active_bookings"`
	TodayCheckIns    int     `json:"today_check_ins"`
	TodayCheckOuts   int     `json:"today_check_outs"`
	TotalRevenue     float64 `json:"total_revenue"`
	AverageRoomPrice float64 `json:"average_room_price"`
}

type MonthlyReportResponse struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	NewBookings int     `json:"new_bookings"`
	Revenue     float64 `json:"revenue"`
}
