package application

// Canned user-facing copy. Every externally visible failure maps to one of
// these; raw errors never reach the chat.
const (
	GatePromptText    = "❗️ Iltimos, kanalga obuna bo‘ling:"
	GateSubscribeText = "📢 Kanalga obuna bo'lish"
	GateCheckText     = "✅ Tekshirish"
	GateConfirmedText = "✅ Obuna tasdiqlandi. Menyu ochildi."
	GateFailedText    = "❌ Obuna aniqlanmadi."

	WelcomeText = "📋 Assalomu alekum yaxshimisiz? \n\n💥Sizni koʻrib turganimdan xursandman😎\n\n" +
		"📌Biz bilan BUXGALTERIYANI oʻrganib,  oʻzingizga komfort sharoitni yarating. " +
		"Quyidagi menyudan kerakli boʻlimni tanlang👇👇👇👇"
	MenuText = "📋 Asosiy menyu:"

	MenuLabelCourse   = "📚 Bepul kurs haqida"
	MenuLabelTerms    = "📝 Darsda qatnashish sharti"
	MenuLabelReferral = "🔗 Taklif havolasi"
	MenuLabelPoints   = "🎯 Ballarim"

	courseText = "⚡️Bepul kursda nimalar kutib turibdi💡\n\n" +
		"1) Dars jadvali va mukammal reja asosida darslar tashkillashtiriladi;\n\n" +
		"2) Mavzu boʻyicha uyga vazifa beriladi, va vazifa bajarmaganlar guruhdan chetlashtiriladi.\n\n" +
		"3) Boʻlajak buxgalterlar oʻzlashtirishini monitoring test yoki amaliy vazifalar bilan tekshirilib turiladi;\n\n" +
		"4) Bugalterlar mustaqil shugʻillanishi uchun qoʻshimcha manbalar beriladi.\n\n" +
		"5) Soliq oʻzgarishlari va yangliklari berilib boriladi.\n\n" +
		"Yuqorida sanab oʻtganlarimni hammasi BEPUL. Sizdan harakat boʻlsa boʻldi. " +
		"Intensiv guruh ikki oy davomida kun ora online dars boʻladi✅\n\n" +
		"💡Qani darsda qatnashishni xohlaysizmi?"

	termsText = "🎁 Sizga berilgan takliif havoladan 3 nafar tanishingiz botga start berib kanalga qoʻshilganda avtomat sizga link beriladi." +
		"Shu link orqali yopiq guruhga qo'shilib, BEPUL darslarda qatnashishingiz mumkin.\n\n " +
		"❗️Guruhda 500 kishiga joy ajratilgan ulgurub qoling🤝"

	referralTextFmt = "📌BUXGALTERIYANI BEPUL O'RGANING VA O'ZINGIZ UCHUN KOMFORT SHAROITDA OYLIGI 15 MLN DAN YUQORI FIRMANI BOSHQARING🎉\n\n" +
		"⚡️Siz uchun BEPUL darslar tashkil qilinmoqda🎁\n\n" +
		"❗️Sizdan harakat boʻlsa boʻldi. Intensiv guruh ikki oy davomida kun ora online dars boʻladi✅\n\n" +
		"❗️Qani darsda qatnashishni xohlaysizmi?\n\n" +
		"📌Bu guruhga ulanish BEPUL yani sizdan hech qanday toʻlov talab qilinmaydi🤝\n\n" +
		"•Hoziroq ulaning joylar kam\n\n Sizning referal havolangiz:👇👇👇\n%s"

	pointsTextFmt = "Sizning ballaringiz: %d ball"

	fallbackText = "Iltimos, menyudan tugmani tanlang."

	noPermissionText   = "⛔️ Sizga bu buyruqdan foydalanish huquqi yo‘q."
	broadcastUsageText = "✉️ Xabar matnini yozing: /sendall Bu xabar barcha foydalanuvchilarga yuboriladi."
	broadcastDoneFmt   = "✅ %d ta foydalanuvchiga xabar yuborildi."
)

// MenuLabels returns the four persistent reply-keyboard rows, in order.
func MenuLabels() []string {
	return []string{MenuLabelCourse, MenuLabelTerms, MenuLabelReferral, MenuLabelPoints}
}
