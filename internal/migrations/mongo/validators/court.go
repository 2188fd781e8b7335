package validators

import "go.mongodb.org/mongo-driver/bson"

var CourtValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"institution_id",
			"name",
			"sport",
			"active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"institution_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"sport": bson.M{
				"bsonType": "string",
				"enum": []string{
					"padel",
					"tennis",
					"football",
					"basketball",
				},
			},

			"hourly_rate": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"indoor": bson.M{
				"bsonType": "bool",
			},

			"lighting": bson.M{
				"bsonType": "bool",
			},

			"active": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
