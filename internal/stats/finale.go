package stats

// Finale merges already computed results. Generations may be nil.
func Finale(chats *ChatsAndMessagesData, days *DaysActiveData, tod *TimeOfDayData, gens *GenerationsData) *FinaleSlideData {
	if chats == nil || days == nil || tod == nil {
		return nil
	}
	d := &FinaleSlideData{
		TotalChats:      chats.TotalChats,
		DaysUsed:        days.TotalDays,
		PersonalityType: tod.PersonalityType,
		ImagePaths:      []string{},
	}
	if gens != nil {
		d.ImageFiles = gens.ImageFiles
		d.ImagePaths = gens.ImagePaths
	}
	return d
}
