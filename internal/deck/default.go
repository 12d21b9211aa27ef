package deck

// Default returns the three-slide time-use narrative.
func Default() *Deck {
	d, err := New([]SlideSpec{
		{
			Number:     1,
			Dataset:    "scene1.csv",
			ChartTitle: "Time Spent by Activity",
			Caption:    "Are we becoming more selfish? People are spending more time on personal care and leisure -- and less time on caring for others and work.",
			Annotations: []AnnotationSpec{
				{Title: "Personal Care", Label: "Time caring for ourselves is up 1.24%", X: 425, Y: 72, DX: -30, DY: 30},
				{Title: "Care for Non-Household Members", Label: "Time caring for other people outside household down 37.5%", X: 142, Y: 131, DX: 50, DY: 40},
			},
		},
		{
			Number:     2,
			Dataset:    "scene2.csv",
			ChartTitle: "Time Worked by Gender",
			Caption:    "Men are working less and women are working more.",
			Annotations: []AnnotationSpec{
				{Title: "Men", Label: "Men are working 0.5% less", X: 425, Y: 126, DX: -30, DY: -70},
				{Title: "Women", Label: "Women are working 3.07% more", X: 398, Y: 235, DX: -50, DY: 20},
			},
		},
		{
			Number:     3,
			Dataset:    "scene3.csv",
			ChartTitle: "Time Spent by Leisure Activity",
			Caption:    "Are we getting more isolated? People are socializing less and spending more time on solitary activities.",
			Annotations: []AnnotationSpec{
				{Title: "Relaxing and Thinking", Label: "Spending time with our own thoughts and relaxing is up 80%", X: 163, Y: 78, DX: 30, DY: 30},
				{Title: "Socializing/Communicating", Label: "Spending time with and talking with others is down 21%", X: 193, Y: 253, DX: 50, DY: -30},
			},
		},
	})
	if err != nil {
		panic(err)
	}
	return d
}
