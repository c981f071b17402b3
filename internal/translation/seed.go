package translation

import (
	"log"

	"gorm.io/gorm"
)

type seedEntry struct {
	key string
	en  string
	ar  string
	ku  string
}

var seedEntries = []seedEntry{
	{"header.title1", "Kurdistan/Iraq", "كوردستان/العراق", "کوردستان/عێراق"},
	{"header.title2", "Events", "للفعاليات", "ئیڤێنت"},
	{"header.welcome", "Welcome, {name}", "مرحباً، {name}", "بەخێربێیت، {name}"},
	{"header.createEvent", "Create Event", "أنشئ فعالية", "دروستکردنی ڕووداو"},
	{"header.loginSignUp", "Login / Sign Up", "تسجيل الدخول / اشتراك", "چوونەژوورەوە / خۆتۆمارکردن"},
	{"header.help", "Help", "مساعدة", "یارمەتی"},

	{"welcome.login", "Login", "تسجيل الدخول", "چوونەژوورەوە"},
	{"welcome.signup", "Sign Up", "اشتراك", "خۆتۆمارکردن"},
	{"welcome.welcomeBack", "Welcome Back!", "مرحباً بعودتك!", "بەخێربێیتەوە!"},
	{"welcome.createAccount", "Create Your Account", "أنشئ حسابك", "هەژماری خۆت دروست بکە"},
	{"welcome.nameLabel", "Name", "الاسم", "ناو"},
	{"welcome.emailLabel", "Email", "البريد الإلكتروني", "ئیمەیڵ"},
	{"welcome.passwordLabel", "Password", "كلمة المرور", "وشەی نهێنی"},
	{"welcome.forgotPassword", "Forgot Password?", "هل نسيت كلمة المرور؟", "وشەی نهێنیت لەبیرچووە؟"},
	{"welcome.resetPasswordTitle", "Reset Your Password", "إعادة تعيين كلمة المرور", "وشەی نهێنی نوێ بکەرەوە"},
	{"welcome.sendResetLink", "Send Reset Link", "إرسال رابط إعادة التعيين", "ناردنی لینکی نوێکردنەوە"},
	{"welcome.resetLinkSent", "If an account exists for this email, a password reset link has been sent.", "إذا كان هناك حساب لهذا البريد الإلكتروني، فقد تم إرسال رابط إعادة تعيين كلمة المرور.", "ئەگەر هەژمارێک بۆ ئەم ئیمەیڵە هەبێت، لینکی نوێکردنەوەی وشەی نهێنی نێردراوە."},
	{"welcome.backToLogin", "Back to Login", "العودة إلى تسجيل الدخول", "گەڕانەوە بۆ چوونەژوورەوە"},
	{"welcome.registerAs", "Register as", "التسجيل كـ", "خۆتۆمارکردن وەک"},
	{"welcome.attendee", "Attendee", "حاضر", "بەشداربوو"},
	{"welcome.host", "Host / Business", "مضيف / عمل", "میواندار / بازرگانی"},
	{"welcome.businessNameLabel", "Business Name", "اسم العمل", "ناوی بازرگانی"},
	{"welcome.phoneLabel", "Phone Number", "رقم الهاتف", "ژمارەی تەلەفۆن"},
	{"welcome.websiteLabel", "Website (Optional)", "الموقع الإلكتروني (اختياري)", "ماڵپەڕ (ئارەزوومەندانە)"},
	{"welcome.businessAddressLabel", "Official Business Address", "عنوان العمل الرسمي", "ناونیشانی فەرمی بازرگانی"},
	{"welcome.organizerTypeLabel", "Type of Organizer", "نوع المنظم", "جۆری ڕێکخەر"},

	{"organizerType.venue", "Music Venue", "مكان موسيقى", "شوێنی مۆسیقا"},
	{"organizerType.instructor", "Yoga Instructor", "مدرب يوجا", "ڕاهێنەری یۆگا"},
	{"organizerType.foodVendor", "Food Vendor", "بائع طعام", "فرۆشیاری خواردن"},
	{"organizerType.conference", "Conference Company", "شركة مؤتمرات", "کۆمپانیای کۆنفرانس"},
	{"organizerType.nonProfit", "Non-Profit Organization", "منظمة غير ربحية", "ڕێکخراوی ناحکومی"},
	{"organizerType.other", "Other", "آخر", "هیتر"},

	{"home.title", "Upcoming Events", "الفعاليات القادمة", "ڕووداوەکانی داهاتوو"},
	{"home.newEvent", "New Event", "فعالية جديدة", "ڕووداوی نوێ"},
	{"home.all", "All", "الكل", "هەمووی"},
	{"home.noEventsFound", "No Events Found", "لم يتم العور على فعاليات", "هیچ ڕووداوێک نەدۆزرایەوە"},
	{"home.allIraq", "All Iraq", "كل العراق", "هەموو عێراق"},
	{"home.noEventsInCity", "There are no events in this city for the selected category.", "لا توجد فعاليات في هذه المدينة للفئة المحددة.", "هیچ ڕووداوێک لەم شارەدا نییە بۆ پۆلی هەڵبژێردراو."},

	{"verification.pendingTitle", "Account Pending Review", "الحساب قيد المراجعة", "هەژمار چاوەڕوانی پێداچوونەوەیە"},
	{"verification.pendingMessage", "Your host profile has been submitted and is pending review by our team. You will be notified once it is approved.", "تم تقديم ملفك التعريفي كمضيف وهو في انتظار المراجعة من قبل فريقنا. سيتم إعلامك بمجرد الموافقة عليه.", "پڕۆفایلی میوانداری تۆ پێشکەش کراوە و چاوەڕوانی پێداچوونەوەیە لەلایەن تیمی ئێمەوە. کاتێک پەسەند دەکرێت ئاگادار دەکرێیتەوە."},

	{"eventCard.createdBy", "Created by {name}", "أنشأها {name}", "دروستکراوە لەلایەن {name}"},
	{"eventCard.sponsored", "Sponsored", "برعاية", "سپۆنسەر"},
	{"category.sponsoredBy", "Sponsored by {name}", "برعاية {name}", "بە سپۆنسەری {name}"},

	{"createEvent.title", "Create New Event", "إنشاء فعالية جديدة", "دروستکردنی ڕووداوی نوێ"},
	{"createEvent.eventTitleLabel", "Event Title", "عنوان الفعالية", "ناوی ڕووداو"},
	{"createEvent.descriptionLabel", "Description", "الوصف", "وەسف"},
	{"createEvent.cityLabel", "City", "المدينة", "شار"},
	{"createEvent.selectCity", "Select a city", "اختر مدينة", "شارێک هەڵبژێرە"},
	{"createEvent.categoryLabel", "Category", "الفئة", "پۆل"},
	{"createEvent.selectCategory", "Select a category", "اختر فئة", "پۆلێک هەڵبژێرە"},
	{"createEvent.dateLabel", "Date", "التاريخ", "بەروار"},
	{"createEvent.timeLabel", "Time", "الوقت", "کات"},
	{"createEvent.locationLabel", "Location", "الموقع", "شوێن"},
	{"createEvent.imageLabel", "Event Image", "صورة الفعالية", "وێنەی ڕووداو"},
	{"createEvent.uploadPhoto", "Upload Photo", "تحميل صورة", "وێنە باربکە"},
	{"createEvent.submitButton", "Create Event", "إنشاء الفعالية", "دروستکردنی ڕووداو"},
	{"createEvent.error.englishRequired", "English title and description are required.", "العنوان والوصف باللغة الإنجليزية مطلوبان.", "سەردێڕ و وەسفی ئینگلیزی پێویستە."},
}

// SeedTranslations loads the baseline UI dictionaries on first boot
func SeedTranslations(db *gorm.DB) error {
	repo := NewRepository(db)

	count, err := repo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, entry := range seedEntries {
		for lang, value := range map[string]string{
			LangEnglish: entry.en,
			LangArabic:  entry.ar,
			LangKurdish: entry.ku,
		} {
			if err := repo.Upsert(&Translation{Key: entry.key, Lang: lang, Value: value}); err != nil {
				return err
			}
		}
	}

	log.Printf("✅ Seeded %d translation keys in 3 languages", len(seedEntries))
	return nil
}
