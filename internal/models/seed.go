package models

import "time"

// SeedSampleProjects inserts a bundled sample catalog when the projects
// table is empty, so the listing is never blank in a demo deployment.
// Sample rows belong to a dedicated showcase account.
func SeedSampleProjects() error {
	var count int64
	DB.Model(&Project{}).Count(&count)
	if count > 0 {
		return nil
	}

	showcase := User{
		Email:    "showcase@campuslink.local",
		FullName: "CampusLink Showcase",
		UserType: UserTypeStudent,
		AuthType: "local",
		IsActive: false, // cannot log in; exists only to own sample rows
	}
	if err := DB.Create(&showcase).Error; err != nil {
		return err
	}

	samples := []struct {
		project Project
		authors []ProjectAuthor
	}{
		{
			project: Project{
				Name:          "Facial Recognition Campus Security",
				Description:   "AI system using convolutional neural networks to identify people in real time, improving security on university campuses.",
				Category:      CategoryAI,
				Tags:          "machine learning,computer vision,python,tensorflow",
				EstimatedCost: 15000,
				ImageURL:      "/samples/facial-recognition-dashboard.jpg",
				ContactEmail:  "maria.gonzalez@example.com",
				CreatedAt:     time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			},
			authors: []ProjectAuthor{
				{Name: "María González", University: "Universidad Nacional", Email: "maria.gonzalez@example.com"},
				{Name: "Carlos Ramírez", University: "Universidad Nacional", Email: "carlos.ramirez@example.com"},
			},
		},
		{
			project: Project{
				Name:          "Community Support Platform",
				Description:   "Social network designed to connect volunteers with non-profit organizations, enabling collaboration on social and community projects.",
				Category:      CategoryWeb,
				Tags:          "social impact,volunteering,react,node.js",
				EstimatedCost: 8000,
				ImageURL:      "/samples/community-support-platform.jpg",
				ContactEmail:  "ana.martinez@example.com",
				CreatedAt:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			},
			authors: []ProjectAuthor{
				{Name: "Ana Martínez", University: "Universidad Autónoma", Email: "ana.martinez@example.com"},
			},
		},
		{
			project: Project{
				Name:          "IoT Smart Agriculture System",
				Description:   "Technology solution integrating IoT sensors to monitor soil conditions, humidity and temperature, optimizing irrigation and increasing farm productivity.",
				Category:      CategoryIoT,
				Tags:          "iot,arduino,sensors,agriculture",
				EstimatedCost: 12000,
				ImageURL:      "/samples/smart-agriculture-sensors.jpg",
				ContactEmail:  "luis.fernandez@example.com",
				CreatedAt:     time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
			},
			authors: []ProjectAuthor{
				{Name: "Luis Fernández", University: "Instituto Tecnológico", Email: "luis.fernandez@example.com"},
				{Name: "Patricia Ruiz", University: "Instituto Tecnológico", Email: "patricia.ruiz@example.com"},
			},
		},
		{
			project: Project{
				Name:          "Sustainable Modular Housing Design",
				Description:   "Architectural proposal for modular housing built from recycled materials with bioclimatic design, reducing environmental impact and construction costs.",
				Category:      CategoryOther,
				Tags:          "sustainable architecture,modular design,ecology",
				EstimatedCost: 45000,
				ImageURL:      "/samples/sustainable-modular-housing.jpg",
				ContactEmail:  "roberto.silva@example.com",
				CreatedAt:     time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			},
			authors: []ProjectAuthor{
				{Name: "Roberto Silva", University: "Universidad de Arquitectura", Email: "roberto.silva@example.com"},
			},
		},
	}

	for _, s := range samples {
		s.project.Status = ProjectActive
		s.project.CreatedBy = showcase.ID
		if err := DB.Create(&s.project).Error; err != nil {
			return err
		}
		for _, a := range s.authors {
			a.ProjectID = s.project.ID
			a.Role = "author"
			if err := DB.Create(&a).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
