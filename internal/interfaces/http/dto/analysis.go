package dto

// EarningsSurprisesQuery 财报超预期分析查询参数
type EarningsSurprisesQuery struct {
	Days   int    `form:"days"`
	Day    int    `form:"day"`
	Sector string `form:"sector"`
}

// Window 返回分析窗口天数，兼容 day/days 两种写法
func (q *EarningsSurprisesQuery) Window() int {
	if q.Days > 0 {
		return q.Days
	}
	return q.Day
}
