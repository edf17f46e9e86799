package recommender

import "smart-resume-analyzer/internal/types"

// 各方向的课程目录
var (
	DataScienceCourses = []types.CourseLink{
		{Name: "Machine Learning Crash Course by Google [Free]", Link: "https://developers.google.com/machine-learning/crash-course"},
		{Name: "Machine Learning A-Z by Udemy", Link: "https://www.udemy.com/course/machinelearning/"},
		{Name: "Machine Learning by Andrew NG", Link: "https://www.coursera.org/learn/machine-learning"},
		{Name: "Data Scientist Master Program of Simplilearn (IBM)", Link: "https://www.simplilearn.com/big-data-and-analytics/senior-data-scientist-masters-program-training"},
		{Name: "Data Science Foundations: Fundamentals by LinkedIn", Link: "https://www.linkedin.com/learning/data-science-foundations-fundamentals-5"},
		{Name: "Data Scientist with Python", Link: "https://www.datacamp.com/tracks/data-scientist-with-python"},
		{Name: "Programming for Data Science with Python", Link: "https://www.udacity.com/course/programming-for-data-science-nanodegree--nd104"},
		{Name: "Programming for Data Science with R", Link: "https://www.udacity.com/course/programming-for-data-science-nanodegree-with-R--nd118"},
		{Name: "Introduction to Data Science", Link: "https://www.udacity.com/course/introduction-to-data-science--cd0017"},
		{Name: "Intro to Machine Learning with TensorFlow", Link: "https://www.udacity.com/course/intro-to-machine-learning-with-tensorflow-nanodegree--nd230"},
	}

	WebCourses = []types.CourseLink{
		{Name: "Django Crash course [Free]", Link: "https://youtu.be/e1IyzVyrLSU"},
		{Name: "Python and Django Full Stack Web Developer Bootcamp", Link: "https://www.udemy.com/course/python-and-django-full-stack-web-developer-bootcamp"},
		{Name: "React Crash Course [Free]", Link: "https://youtu.be/Dorf8i6lCuk"},
		{Name: "ReactJS Project Development Training", Link: "https://www.dotnek.com/Course/Details/react-js-project-development-training"},
		{Name: "Full Stack Web Developer - MEAN Stack", Link: "https://www.simplilearn.com/full-stack-web-developer-mean-stack-certification-training"},
		{Name: "Node.js and Express.js [Free]", Link: "https://youtu.be/Oe421EPjeBE"},
		{Name: "Flask: Develop Web Applications in Python", Link: "https://www.educative.io/courses/flask-develop-web-applications-in-python"},
		{Name: "Full Stack Web Developer by Udacity", Link: "https://www.udacity.com/course/full-stack-web-developer-nanodegree--nd0044"},
		{Name: "Front End Web Developer by Udacity", Link: "https://www.udacity.com/course/front-end-web-developer-nanodegree--nd0011"},
		{Name: "Become a React Developer by Udacity", Link: "https://www.udacity.com/course/react-nanodegree--nd019"},
	}

	AndroidCourses = []types.CourseLink{
		{Name: "Android Development for Beginners [Free]", Link: "https://youtu.be/fis26HvvDII"},
		{Name: "Android App Development Specialization", Link: "https://www.coursera.org/specializations/android-app-development"},
		{Name: "Associate Android Developer Certification", Link: "https://grow.google/androiddev/#?modal_active=none"},
		{Name: "The Complete Android Oreo Developer Course", Link: "https://www.udemy.com/course/the-complete-android-oreo-developer-course/"},
		{Name: "Building an Android App with Architecture Components", Link: "https://www.linkedin.com/learning/building-an-android-app-with-architecture-components"},
		{Name: "Android App Development Masterclass using Kotlin", Link: "https://www.udemy.com/course/android-oreo-kotlin-app-masterclass/"},
		{Name: "Flutter & Dart - The Complete Flutter App Development Course", Link: "https://www.udemy.com/course/flutter-dart-the-complete-flutter-app-development-course/"},
		{Name: "Flutter App Development Course [Free]", Link: "https://youtu.be/rZLR5olMR64"},
	}

	IOSCourses = []types.CourseLink{
		{Name: "IOS App Development by LinkedIn", Link: "https://www.linkedin.com/learning/subscription/topics/ios"},
		{Name: "iOS & Swift - The Complete iOS App Development Bootcamp", Link: "https://www.udemy.com/course/ios-13-app-development-bootcamp/"},
		{Name: "Become an iOS Developer", Link: "https://www.udacity.com/course/ios-developer-nanodegree--nd003"},
		{Name: "iOS App Development with Swift Specialization", Link: "https://www.coursera.org/specializations/app-development"},
		{Name: "Mobile App Development with Swift", Link: "https://www.edx.org/professional-certificate/curtinx-mobile-app-development-with-swift"},
		{Name: "Swift Course by LinkedIn", Link: "https://www.linkedin.com/learning/subscription/topics/swift-2"},
		{Name: "Objective-C Crash Course for Swift Developers", Link: "https://www.udemy.com/course/objectivec/"},
		{Name: "Learn Swift by Codecademy", Link: "https://www.codecademy.com/learn/learn-swift"},
		{Name: "Swift Tutorial - Full Course for Beginners [Free]", Link: "https://youtu.be/comQ1-x2a1Q"},
		{Name: "Learn Swift Fast - [Free]", Link: "https://youtu.be/FcsY1YPBwzQ"},
	}

	UIUXCourses = []types.CourseLink{
		{Name: "Google UX Design Professional Certificate", Link: "https://www.coursera.org/professional-certificates/google-ux-design"},
		{Name: "UI / UX Design Specialization", Link: "https://www.coursera.org/specializations/ui-ux-design"},
		{Name: "The Complete App Design Course - UX, UI and Design Thinking", Link: "https://www.udemy.com/course/the-complete-app-design-course-ux-and-ui-design/"},
		{Name: "UX & Web Design Master Course: Strategy, Design, Development", Link: "https://www.udemy.com/course/ux-web-design-master-course-strategy-design-development/"},
		{Name: "Interaction Design Specialization", Link: "https://www.coursera.org/specializations/interaction-design"},
		{Name: "DESIGN RULES: Principles + Practices for Great UI Design", Link: "https://www.udemy.com/course/design-rules/"},
		{Name: "Become a UX Designer by Udacity", Link: "https://www.udacity.com/course/ux-designer-nanodegree--nd578"},
		{Name: "Adobe XD Tutorial: User Experience Design Course [Free]", Link: "https://youtu.be/68w2VwalD5w"},
		{Name: "Adobe XD for Beginners [Free]", Link: "https://youtu.be/WEljsc2jorI"},
		{Name: "Adobe XD in Simple Way", Link: "https://learnux.io/course/adobe-xd"},
	}
)

// 附赠视频
var (
	ResumeVideos = []types.CourseLink{
		{Name: "How to write a resume that stands out", Link: "https://youtu.be/y8YH0Qbu5h4"},
		{Name: "Resume tips: get noticed by recruiters", Link: "https://youtu.be/J-4Fv8nq1iA"},
		{Name: "Writing a resume for your first job", Link: "https://youtu.be/yp693O87GmM"},
		{Name: "What hiring managers look for in a resume", Link: "https://youtu.be/UeMmCex9uTU"},
		{Name: "How to make a one page resume", Link: "https://youtu.be/dQ7Q8ZdnuN0"},
		{Name: "Resume mistakes to avoid", Link: "https://youtu.be/HQqqQx5BCFY"},
	}

	InterviewVideos = []types.CourseLink{
		{Name: "Tell me about yourself: how to answer", Link: "https://youtu.be/Ji46s5BHdr0"},
		{Name: "Top interview questions and answers", Link: "https://youtu.be/seVxXHi2YMs"},
		{Name: "How to prepare for a technical interview", Link: "https://youtu.be/9FgYnOhw2Ac"},
		{Name: "Behavioral interview: the STAR method", Link: "https://youtu.be/HG68Ymazo18"},
		{Name: "Questions to ask at the end of an interview", Link: "https://youtu.be/BOvAAoxM4vg"},
		{Name: "Body language tips for interviews", Link: "https://youtu.be/KukmClH1KoA"},
	}
)
