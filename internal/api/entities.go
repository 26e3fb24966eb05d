package api

import (
	"net/http"

	"github.com/nao1215/youto/internal/resource"
)

// Entity routes. Paths keep the public spelling, including "appointement".
const (
	pathUsers               = "/users"
	pathAPCategories        = "/ap-categories"
	pathProcedures          = "/procedure"
	pathArticles            = "/articles"
	pathArticleImages       = "/image-article"
	pathAppointmentTracking = "/appointement-tracking"
	pathTasks               = "/tasks"
)

// userDefinition: the password is set on create only; updates never touch it.
var userDefinition = resource.Definition{
	Path:  pathUsers,
	Table: "users",
	InsertColumns: []string{
		"email", "first_name", "last_name", "tel_number", "birth_date",
		"inscription_date", "password", "id_role", "city",
	},
	UpdateColumns: []string{
		"email", "first_name", "last_name", "tel_number", "birth_date",
		"inscription_date", "id_role", "city",
	},
	Defaults: map[string]any{"id_role": int64(1)},
	Messages: resource.Messages{
		ListFailed:   "Erreur lors de la récupération des utilisateurs.",
		GetFailed:    "Erreur lors de la récupération de l'utilisateur.",
		NotFound:     "Utilisateur non trouvé.",
		Created:      "Utilisateur créé avec succès.",
		CreateFailed: "Erreur lors de la création de l'utilisateur.",
		Updated:      "Utilisateur mis à jour avec succès.",
		UpdateFailed: "Erreur lors de la mise à jour de l'utilisateur.",
		Deleted:      "Utilisateur supprimé avec succès.",
		DeleteFailed: "Erreur lors de la suppression de l'utilisateur.",
	},
}

var apCategoryDefinition = resource.Definition{
	Path:          pathAPCategories,
	Table:         "ap_categories",
	InsertColumns: []string{"name", "description"},
	UpdateColumns: []string{"name", "description"},
	Messages: resource.Messages{
		ListFailed:   "Erreur lors de la récupération des catégories de démarche administrative.",
		GetFailed:    "Erreur lors de la récupération de la catégorie de démarche administrative.",
		NotFound:     "Catégorie de démarche administrative non trouvée.",
		Created:      "Catégorie de démarche administrative créée avec succès.",
		CreateFailed: "Erreur lors de la création de la catégorie de démarche administrative.",
		Updated:      "Catégorie de démarche administrative mise à jour avec succès.",
		UpdateFailed: "Erreur lors de la mise à jour de la catégorie de démarche administrative.",
		Deleted:      "Catégorie de démarche administrative supprimée avec succès.",
		DeleteFailed: "Erreur lors de la suppression de la catégorie de démarche administrative.",
	},
}

var procedureDefinition = resource.Definition{
	Path:          pathProcedures,
	Table:         "administrative_procedure",
	InsertColumns: []string{"nom", "description"},
	UpdateColumns: []string{"nom", "description"},
	Messages: resource.Messages{
		ListFailed:   "Erreur lors de la récupération des démarches administratives.",
		GetFailed:    "Erreur lors de la récupération de la démarche administrative.",
		NotFound:     "Démarche administrative non trouvée.",
		Created:      "Démarche administrative créée avec succès.",
		CreateFailed: "Erreur lors de la création de la démarche administrative.",
		Updated:      "Démarche administrative mise à jour avec succès.",
		UpdateFailed: "Erreur lors de la mise à jour de la démarche administrative.",
		Deleted:      "Démarche administrative supprimée avec succès.",
		DeleteFailed: "Erreur lors de la suppression de la démarche administrative.",
	},
}

var articleDefinition = resource.Definition{
	Path:          pathArticles,
	Table:         "article",
	InsertColumns: []string{"title", "content"},
	UpdateColumns: []string{"title", "content"},
	Messages: resource.Messages{
		ListFailed:   "Erreur lors de la récupération des articles.",
		GetFailed:    "Erreur lors de la récupération de l'article.",
		NotFound:     "Article non trouvé.",
		Created:      "Article créé avec succès.",
		CreateFailed: "Erreur lors de la création de l'article.",
		Updated:      "Article mis à jour avec succès.",
		UpdateFailed: "Erreur lors de la mise à jour de l'article.",
		Deleted:      "Article supprimé avec succès.",
		DeleteFailed: "Erreur lors de la suppression de l'article.",
	},
}

// articleImageDefinition stores image as bytes; clients exchange it as base64.
var articleImageDefinition = resource.Definition{
	Path:          pathArticleImages,
	Table:         "img",
	InsertColumns: []string{"name", "image", "article_id"},
	UpdateColumns: []string{"name", "image", "article_id"},
	Base64Columns: []string{"image"},
	Messages: resource.Messages{
		ListFailed:   "Erreur lors de la récupération des images.",
		GetFailed:    "Erreur lors de la récupération de l'image.",
		NotFound:     "Image non trouvée.",
		Created:      "Image ajoutée avec succès.",
		CreateFailed: "Erreur lors de l'ajout de l'image.",
		Updated:      "Image mise à jour avec succès.",
		UpdateFailed: "Erreur lors de la mise à jour de l'image.",
		Deleted:      "Image supprimée avec succès.",
		DeleteFailed: "Erreur lors de la suppression de l'image.",
	},
}

var appointmentTrackingDefinition = resource.Definition{
	Path:          pathAppointmentTracking,
	Table:         "appointement_tracking",
	InsertColumns: []string{"id_appointement", "id_user", "start_datetime", "end_datetime"},
	UpdateColumns: []string{"id_appointement", "id_user", "start_datetime", "end_datetime"},
	CreatedStatus: http.StatusCreated,
	Messages: resource.Messages{
		ListFailed:   "Erreur lors de la récupération des suivis de rendez-vous.",
		GetFailed:    "Erreur lors de la récupération du suivi de rendez-vous.",
		NotFound:     "Suivi de rendez-vous non trouvé.",
		Created:      "Suivi de rendez-vous ajouté avec succès.",
		CreateFailed: "Erreur lors de l'ajout du suivi de rendez-vous.",
		Updated:      "Suivi de rendez-vous mis à jour avec succès.",
		UpdateFailed: "Erreur lors de la mise à jour du suivi de rendez-vous.",
		Deleted:      "Suivi de rendez-vous supprimé avec succès.",
		DeleteFailed: "Erreur lors de la suppression du suivi de rendez-vous.",
	},
}

// taskDefinition: id_user is fixed at creation.
var taskDefinition = resource.Definition{
	Path:          pathTasks,
	Table:         "todo_list",
	InsertColumns: []string{"task_description", "status", "deadline", "id_user"},
	UpdateColumns: []string{"task_description", "status", "deadline"},
	Messages: resource.Messages{
		ListFailed:   "Erreur lors de la récupération des tâches.",
		GetFailed:    "Erreur lors de la récupération de la tâche.",
		NotFound:     "Tâche non trouvée.",
		Created:      "Tâche créée avec succès.",
		CreateFailed: "Erreur lors de la création de la tâche.",
		Updated:      "Tâche mise à jour avec succès.",
		UpdateFailed: "Erreur lors de la mise à jour de la tâche.",
		Deleted:      "Tâche supprimée avec succès.",
		DeleteFailed: "Erreur lors de la suppression de la tâche.",
	},
}

// definitions lists every CRUD entity in route registration order.
func definitions() []resource.Definition {
	return []resource.Definition{
		userDefinition,
		apCategoryDefinition,
		procedureDefinition,
		articleDefinition,
		articleImageDefinition,
		appointmentTrackingDefinition,
		taskDefinition,
	}
}
